package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/formpilot/formbuilder-service/internal/cache"
	"github.com/formpilot/formbuilder-service/internal/events"
	"github.com/formpilot/formbuilder-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportResponsesToExcel(t *testing.T) {
	responses, form, repo, _ := newResponseServiceForTest(t)
	forms := NewFormService(repo, cache.NoopCache{}, events.NewMockEventPublisher(testLogger()), testLogger(), validator.New())
	svc := NewExportService(repo, forms, testLogger())
	ctx := context.Background()

	_, err := responses.Submit(ctx, submitRequestFor(form), false)
	require.NoError(t, err)

	data, filename, err := svc.ExportResponsesToExcel(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "responses-"+form.ID+".xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Responses", "D1")
	require.NoError(t, err)
	assert.Equal(t, "Q1: Sort the animals", header)

	header, err = f.GetCellValue("Responses", "E1")
	require.NoError(t, err)
	assert.Equal(t, "Q2: Fill the blanks", header)

	categorizeCell, err := f.GetCellValue("Responses", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Dog -> Mammal; Eagle -> Bird", categorizeCell)

	clozeCell, err := f.GetCellValue("Responses", "E2")
	require.NoError(t, err)
	assert.Equal(t, "quick, fox", clozeCell)

	submittedBy, err := f.GetCellValue("Responses", "B2")
	require.NoError(t, err)
	assert.Equal(t, "respondent@example.com", submittedBy)
}

func TestExportService_UnknownForm(t *testing.T) {
	_, _, repo, _ := newResponseServiceForTest(t)
	forms := NewFormService(repo, cache.NoopCache{}, events.NewMockEventPublisher(testLogger()), testLogger(), validator.New())
	svc := NewExportService(repo, forms, testLogger())

	_, _, err := svc.ExportResponsesToExcel(context.Background(), "missing-form")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
