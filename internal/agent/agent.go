// Package agent orchestrates the review pipeline: resume files are parsed to
// text, features extracted, profiles scored and the batch ranked into a
// report.
package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adeolu/candidate-ranker/internal/config"
	"github.com/adeolu/candidate-ranker/internal/extraction"
	"github.com/adeolu/candidate-ranker/internal/ingestion"
	"github.com/adeolu/candidate-ranker/internal/models"
	"github.com/adeolu/candidate-ranker/internal/scoring"
)

// ErrNoReport is returned by Report before any batch has been analyzed.
var ErrNoReport = errors.New("no results available, run an analysis first")

// How many education sentences a report row carries.
const maxEducationSnippets = 3

// Agent wires the extraction and scoring stages together. Ranking criteria are
// passed into every call rather than stored: concurrent batches with different
// criteria must not contaminate each other.
type Agent struct {
	files     *ingestion.FileHandler
	extractor *extraction.Extractor
	scorer    *scoring.Scorer
	gmail     config.GmailConfig
	log       *zap.Logger

	mu     sync.RWMutex
	report *models.CandidateReport
}

// New creates an agent.
func New(files *ingestion.FileHandler, extractor *extraction.Extractor, scorer *scoring.Scorer, gmail config.GmailConfig, log *zap.Logger) *Agent {
	return &Agent{
		files:     files,
		extractor: extractor,
		scorer:    scorer,
		gmail:     gmail,
		log:       log,
	}
}

// FileHandler exposes the uploads handler to the HTTP layer.
func (a *Agent) FileHandler() *ingestion.FileHandler {
	return a.files
}

// AnalyzeFile parses, extracts and scores a single resume file.
func (a *Agent) AnalyzeFile(ctx context.Context, path string, criteria models.RankingCriteria) (*models.CandidateProfile, error) {
	profile, err := a.buildProfile(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.scorer.ScoreCandidate(profile, criteria), nil
}

// AnalyzeFiles runs the full pipeline over a batch of resume files and caches
// the ranked report. Files that fail to parse or extract are logged and
// skipped so one scanned PDF does not sink the batch.
func (a *Agent) AnalyzeFiles(ctx context.Context, paths []string, criteria models.RankingCriteria) (*models.CandidateReport, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no resume files to analyze")
	}

	profiles := make([]*models.CandidateProfile, 0, len(paths))
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		a.log.Info("analyzing resume",
			zap.String("file", filepath.Base(path)),
			zap.Int("current", i+1),
			zap.Int("total", len(paths)))

		profile, err := a.buildProfile(ctx, path)
		if err != nil {
			a.log.Warn("skipping resume", zap.String("file", filepath.Base(path)), zap.Error(err))
			continue
		}
		profiles = append(profiles, profile)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("no resume could be processed out of %d files", len(paths))
	}

	ranked := a.scorer.RankCandidates(profiles, criteria)
	report := buildReport(ranked, criteria)

	a.mu.Lock()
	a.report = report
	a.mu.Unlock()

	return report, nil
}

// AnalyzeDir analyzes every supported resume file found in dir.
func (a *Agent) AnalyzeDir(ctx context.Context, dir string, criteria models.RankingCriteria) (*models.CandidateReport, error) {
	paths, err := ingestion.ListResumeFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no resume files found in %s", dir)
	}
	return a.AnalyzeFiles(ctx, paths, criteria)
}

// AnalyzeUploads analyzes the files currently in the uploads directory.
func (a *Agent) AnalyzeUploads(ctx context.Context, criteria models.RankingCriteria) (*models.CandidateReport, error) {
	paths, err := a.files.ResumeFiles()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no resume files found in uploads directory")
	}
	return a.AnalyzeFiles(ctx, paths, criteria)
}

// IngestFromGmail fetches resume attachments matching the subject filter into
// a cleared uploads directory and analyzes them.
func (a *Agent) IngestFromGmail(ctx context.Context, subject string, criteria models.RankingCriteria) (*models.CandidateReport, error) {
	handler, err := ingestion.NewGmailHandler(ctx, a.files.UploadsDir(), a.gmail.CredentialsFile, a.gmail.TokenFile, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gmail handler: %w", err)
	}

	if err := a.files.ClearUploads(); err != nil {
		return nil, fmt.Errorf("failed to clear uploads: %w", err)
	}

	paths, err := handler.FetchAttachments(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Gmail attachments: %w", err)
	}

	return a.AnalyzeFiles(ctx, paths, criteria)
}

// Report returns the most recent ranked report.
func (a *Agent) Report() (*models.CandidateReport, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.report == nil {
		return nil, ErrNoReport
	}
	return a.report, nil
}

// buildProfile parses one file to text and extracts its signals.
func (a *Agent) buildProfile(ctx context.Context, path string) (*models.CandidateProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := ingestion.ExtractText(ctx, path, raw)
	if err != nil {
		return nil, err
	}

	data, err := a.extractor.ExtractAll(text)
	if err != nil {
		return nil, err
	}

	return &models.CandidateProfile{
		CandidateID:   candidateID(path),
		ExtractedData: data,
		SourcePath:    path,
	}, nil
}

// candidateID derives an opaque unique id from the file stem plus a short
// random suffix, so two files named resume.pdf still rank as two candidates.
func candidateID(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("%s_%s", stem, uuid.NewString()[:8])
}

// buildReport converts ranked profiles into report rows.
func buildReport(ranked []*models.CandidateProfile, criteria models.RankingCriteria) *models.CandidateReport {
	rows := make([]models.RankedCandidate, 0, len(ranked))
	for i, profile := range ranked {
		snippets := profile.ExtractedData.Education
		if len(snippets) > maxEducationSnippets {
			snippets = snippets[:maxEducationSnippets]
		}
		rows = append(rows, models.RankedCandidate{
			Rank:              i + 1,
			CandidateID:       profile.CandidateID,
			Score:             profile.Score,
			ScoreBreakdown:    profile.ScoreBreakdown,
			Skills:            profile.ExtractedData.Skills,
			EducationSnippets: snippets,
			SourcePath:        profile.SourcePath,
		})
	}

	return &models.CandidateReport{
		Candidates: rows,
		Total:      len(rows),
		Criteria:   criteria,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}
