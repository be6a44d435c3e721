// Package export writes ranking reports to Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/adeolu/candidate-ranker/internal/models"
)

// Score bands used for color-coding rows. Scores are on the 0-1 scale.
const (
	bandStrong   = 0.8
	bandGood     = 0.6
	bandModerate = 0.4
)

var defaultBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// ToExcel writes the report to an .xlsx workbook at outputPath.
func ToExcel(report *models.CandidateReport, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	rankedSheet := "Ranked Candidates"
	detailsSheet := "Extracted Signals"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(rankedSheet)
	f.NewSheet(detailsSheet)

	if err := writeSummarySheet(f, summarySheet, report); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRankedSheet(f, rankedSheet, report); err != nil {
		return fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}
	if err := writeDetailsSheet(f, detailsSheet, report); err != nil {
		return fmt.Errorf("failed to create details sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		// Direct save can fail on some mounted filesystems; retry via buffer.
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return fmt.Errorf("failed to save Excel file: %w", writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return nil
}

// writeSummarySheet writes criteria, counts and score statistics.
func writeSummarySheet(f *excelize.File, sheet string, report *models.CandidateReport) error {
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Candidate Ranking Report")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled := func(label string, value interface{}) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabeled("Generated:", report.Timestamp)
	setLabeled("Candidates Ranked:", report.Total)
	setLabeled("Skills Weight:", report.Criteria.SkillsWeight)
	setLabeled("Experience Weight:", report.Criteria.ExperienceWeight)
	setLabeled("Education Weight:", report.Criteria.EducationWeight)
	setLabeled("Required Skills:", strings.Join(report.Criteria.RequiredSkills, ", "))
	row++

	if len(report.Candidates) == 0 {
		return nil
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Score Statistics")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	minScore := report.Candidates[0].Score
	maxScore := minScore
	total := 0.0
	for _, c := range report.Candidates {
		total += c.Score
		if c.Score < minScore {
			minScore = c.Score
		}
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	setLabeled("Top Candidate:", report.Candidates[0].CandidateID)
	setLabeled("Highest Score:", fmt.Sprintf("%.3f", maxScore))
	setLabeled("Lowest Score:", fmt.Sprintf("%.3f", minScore))
	setLabeled("Average Score:", fmt.Sprintf("%.3f", total/float64(len(report.Candidates))))

	return nil
}

// writeRankedSheet writes one color-coded row per candidate.
func writeRankedSheet(f *excelize.File, sheet string, report *models.CandidateReport) error {
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "F", 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    defaultBorder,
	})
	if err != nil {
		return err
	}

	bandStyle := func(color string) int {
		style, _ := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: defaultBorder,
		})
		return style
	}
	strongStyle := bandStyle("C6EFCE")
	goodStyle := bandStyle("FFEB9C")
	moderateStyle := bandStyle("FFC7CE")
	weakStyle := bandStyle("FF9999")

	headers := []string{"Rank", "Candidate", "Total", "Skills", "Education", "Experience"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, c := range report.Candidates {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.Rank)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.CandidateID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("%.3f", c.Score))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", c.ScoreBreakdown[models.CriterionSkills]))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%.2f", c.ScoreBreakdown[models.CriterionEducation]))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", c.ScoreBreakdown[models.CriterionExperience]))

		var style int
		switch {
		case c.Score >= bandStrong:
			style = strongStyle
		case c.Score >= bandGood:
			style = goodStyle
		case c.Score >= bandModerate:
			style = moderateStyle
		default:
			style = weakStyle
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
	}

	return nil
}

// writeDetailsSheet writes the extracted signals behind each ranking.
func writeDetailsSheet(f *excelize.File, sheet string, report *models.CandidateReport) error {
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "B", 50)
	f.SetColWidth(sheet, "C", "C", 80)
	f.SetColWidth(sheet, "D", "D", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    defaultBorder,
	})
	if err != nil {
		return err
	}

	headers := []string{"Candidate", "Skills Found", "Education Snippets", "Source File"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, c := range report.Candidates {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.CandidateID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), strings.Join(c.Skills, ", "))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), strings.Join(c.EducationSnippets, " | "))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.SourcePath)
	}

	return nil
}
