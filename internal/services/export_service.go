package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/formpilot/formbuilder-service/internal/models"
	"github.com/formpilot/formbuilder-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	// ExportResponsesToExcel renders every response of a form as one row,
	// with one column per question in the form's canonical question order.
	ExportResponsesToExcel(ctx context.Context, formID string) ([]byte, string, error)
}

type exportService struct {
	repo   repositories.Repository
	forms  FormService
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, forms FormService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		forms:  forms,
		logger: logger,
	}
}

func (s *exportService) ExportResponsesToExcel(ctx context.Context, formID string) ([]byte, string, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, "", err
	}

	responses, _, err := s.repo.Response().ListByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list responses: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Responses"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Response ID", "Submitted By", "Submitted At"}
	for i, q := range form.Questions {
		headers = append(headers, fmt.Sprintf("Q%d: %s", i+1, q.QuestionTitle))
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to compute header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, response := range responses {
		row := []interface{}{
			response.ID,
			response.SubmittedBy,
			response.CreatedAt.Format("2006-01-02 15:04:05"),
		}

		byQuestion := answersByQuestion(response)
		for _, q := range form.Questions {
			row = append(row, flattenAnswer(byQuestion[q.ID]))
		}

		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to compute data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported responses", "form_id", formID, "response_count", len(responses))

	filename := fmt.Sprintf("responses-%s.xlsx", formID)
	return buf.Bytes(), filename, nil
}

func answersByQuestion(response *models.Response) map[string]*models.Answer {
	byQuestion := make(map[string]*models.Answer, len(response.Answers))
	for i := range response.Answers {
		byQuestion[response.Answers[i].QuestionID] = &response.Answers[i]
	}
	return byQuestion
}

// flattenAnswer renders one answer as a single cell value. An unanswered
// question renders as an empty cell.
func flattenAnswer(answer *models.Answer) string {
	if answer == nil {
		return ""
	}

	switch answer.QuestionType {
	case models.Categorize:
		parts := make([]string, 0, len(answer.CategorizedItems))
		for _, item := range answer.CategorizedItems {
			parts = append(parts, fmt.Sprintf("%s -> %s", item.ItemName, item.AssignedCategory))
		}
		return strings.Join(parts, "; ")

	case models.Cloze:
		return strings.Join(answer.ClozeAnswers, ", ")

	case models.Comprehension:
		parts := make([]string, 0, len(answer.ComprehensionAnswers))
		for _, mcq := range answer.ComprehensionAnswers {
			parts = append(parts, fmt.Sprintf("%s: %s", mcq.Question, mcq.SelectedOption))
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
