package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/config"
	"github.com/adeolu/candidate-ranker/internal/extraction"
	"github.com/adeolu/candidate-ranker/internal/ingestion"
	"github.com/adeolu/candidate-ranker/internal/models"
	"github.com/adeolu/candidate-ranker/internal/nlp"
	"github.com/adeolu/candidate-ranker/internal/scoring"
)

// stubEngine splits tokens on whitespace and sentences on newlines so the
// pipeline behaves deterministically without a language model.
type stubEngine struct{}

func (stubEngine) Tokens(text string) ([]string, error) {
	return strings.Fields(text), nil
}

func (stubEngine) Sentences(text string) ([]string, error) {
	var sents []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			sents = append(sents, line)
		}
	}
	return sents, nil
}

func (stubEngine) Entities(text string) ([]nlp.Entity, error) {
	return nil, nil
}

func newTestAgent(t *testing.T) *Agent {
	t.Helper()

	cfg := config.Default()
	extractor := extraction.NewExtractor(stubEngine{}, cfg.Extraction.SkillVocabulary, cfg.Extraction.EducationMarkers)
	scorer := scoring.NewScorer(cfg.Scoring.EducationTiers, cfg.Scoring.ExperienceIndicators)
	files := ingestion.NewFileHandler(filepath.Join(t.TempDir(), "uploads"))

	return New(files, extractor, scorer, cfg.Gmail, zap.NewNop())
}

func writeResume(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write resume: %v", err)
	}
	return path
}

func TestAnalyzeFile(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()
	path := writeResume(t, dir, "jane_doe.txt", "Jane Doe\npython and sql developer\nB.Sc Computer Science")

	criteria := config.Default().DefaultCriteria()
	profile, err := a.AnalyzeFile(context.Background(), path, criteria)
	if err != nil {
		t.Fatalf("AnalyzeFile() failed: %v", err)
	}

	if !strings.HasPrefix(profile.CandidateID, "jane_doe_") {
		t.Errorf("CandidateID = %q, want jane_doe_ prefix", profile.CandidateID)
	}
	if len(profile.CandidateID) != len("jane_doe_")+8 {
		t.Errorf("CandidateID %q does not carry an 8 character suffix", profile.CandidateID)
	}
	if got := profile.ExtractedData.Skills; len(got) != 2 || got[0] != "python" || got[1] != "sql" {
		t.Errorf("Skills = %v, want [python sql]", got)
	}
	if len(profile.ExtractedData.Education) != 1 {
		t.Errorf("Education = %v, want one snippet", profile.ExtractedData.Education)
	}
	if profile.Score <= 0 {
		t.Errorf("Score = %v, want > 0", profile.Score)
	}
	if profile.SourcePath != path {
		t.Errorf("SourcePath = %q, want %q", profile.SourcePath, path)
	}
}

func TestAnalyzeFiles(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()
	criteria := config.Default().DefaultCriteria()

	strong := writeResume(t, dir, "strong.txt",
		"python javascript sql react aws docker kubernetes git\nPhD from the university")
	weak := writeResume(t, dir, "weak.txt", "html\nOND certificate")

	report, err := a.AnalyzeFiles(context.Background(), []string{weak, strong}, criteria)
	if err != nil {
		t.Fatalf("AnalyzeFiles() failed: %v", err)
	}

	if report.Total != 2 {
		t.Fatalf("Total = %d, want 2", report.Total)
	}
	if !strings.HasPrefix(report.Candidates[0].CandidateID, "strong_") {
		t.Errorf("top candidate = %q, want the strong resume", report.Candidates[0].CandidateID)
	}
	if report.Candidates[0].Rank != 1 || report.Candidates[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", report.Candidates[0].Rank, report.Candidates[1].Rank)
	}
	if report.Candidates[0].Score < report.Candidates[1].Score {
		t.Errorf("report is not ordered by score: %v < %v", report.Candidates[0].Score, report.Candidates[1].Score)
	}
	if report.Criteria.SkillsWeight != criteria.SkillsWeight {
		t.Errorf("report criteria not echoed back: %+v", report.Criteria)
	}
	if report.Timestamp == "" {
		t.Error("report has no timestamp")
	}
}

func TestAnalyzeFilesSkipsBrokenFiles(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()

	good := writeResume(t, dir, "good.txt", "python developer")
	missing := filepath.Join(dir, "missing.txt")

	report, err := a.AnalyzeFiles(context.Background(), []string{missing, good}, models.RankingCriteria{SkillsWeight: 1.0})
	if err != nil {
		t.Fatalf("AnalyzeFiles() failed: %v", err)
	}
	if report.Total != 1 {
		t.Errorf("Total = %d, want the broken file skipped", report.Total)
	}
}

func TestAnalyzeFilesAllBroken(t *testing.T) {
	a := newTestAgent(t)

	_, err := a.AnalyzeFiles(context.Background(), []string{"nope.txt"}, models.RankingCriteria{})
	if err == nil {
		t.Fatal("expected an error when no file can be processed")
	}
}

func TestAnalyzeFilesEmptyInput(t *testing.T) {
	a := newTestAgent(t)

	_, err := a.AnalyzeFiles(context.Background(), nil, models.RankingCriteria{})
	if err == nil {
		t.Fatal("expected an error for an empty batch")
	}
}

func TestAnalyzeFilesCancelledContext(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()
	path := writeResume(t, dir, "resume.txt", "python")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeFiles(ctx, []string{path}, models.RankingCriteria{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestAnalyzeDir(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()
	writeResume(t, dir, "one.txt", "python developer")
	writeResume(t, dir, "notes.md", "ignored")

	report, err := a.AnalyzeDir(context.Background(), dir, models.RankingCriteria{SkillsWeight: 1.0})
	if err != nil {
		t.Fatalf("AnalyzeDir() failed: %v", err)
	}
	if report.Total != 1 {
		t.Errorf("Total = %d, want 1", report.Total)
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	a := newTestAgent(t)

	_, err := a.AnalyzeDir(context.Background(), t.TempDir(), models.RankingCriteria{})
	if err == nil {
		t.Fatal("expected an error for a directory without resumes")
	}
}

func TestReport(t *testing.T) {
	a := newTestAgent(t)

	if _, err := a.Report(); !errors.Is(err, ErrNoReport) {
		t.Fatalf("got %v, want ErrNoReport before any analysis", err)
	}

	dir := t.TempDir()
	path := writeResume(t, dir, "resume.txt", "python")
	want, err := a.AnalyzeFiles(context.Background(), []string{path}, models.RankingCriteria{SkillsWeight: 1.0})
	if err != nil {
		t.Fatalf("AnalyzeFiles() failed: %v", err)
	}

	got, err := a.Report()
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if got != want {
		t.Error("Report() did not return the cached report")
	}
}

func TestReportEducationSnippetsCapped(t *testing.T) {
	a := newTestAgent(t)
	dir := t.TempDir()
	path := writeResume(t, dir, "resume.txt",
		"B.Sc first degree\nbachelor second\nuniversity third\npolytechnic fourth\nhnd fifth")

	report, err := a.AnalyzeFiles(context.Background(), []string{path}, models.RankingCriteria{EducationWeight: 1.0})
	if err != nil {
		t.Fatalf("AnalyzeFiles() failed: %v", err)
	}
	if got := len(report.Candidates[0].EducationSnippets); got != maxEducationSnippets {
		t.Errorf("got %d education snippets, want %d", got, maxEducationSnippets)
	}
}
