package ingestion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailHandler fetches resume attachments from a Gmail inbox into the uploads
// directory, one file per candidate.
type GmailHandler struct {
	service    *gmail.Service
	uploadsDir string
	log        *zap.Logger
}

// NewGmailHandler builds a Gmail client from the OAuth credentials and cached
// token files and returns a handler writing into uploadsDir.
func NewGmailHandler(ctx context.Context, uploadsDir, credentialsFile, tokenFile string, log *zap.Logger) (*GmailHandler, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	client, err := oauthClient(ctx, config, tokenFile)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailHandler{
		service:    srv,
		uploadsDir: uploadsDir,
		log:        log,
	}, nil
}

// oauthClient builds an HTTP client from a cached token. Unlike the usual
// interactive flow there is no terminal prompt here: a missing or expired
// token is an error telling the operator to run the authorization flow.
func oauthClient(ctx context.Context, config *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
		return nil, fmt.Errorf("no cached Gmail token at %s; authorize via %s and save the token: %w", tokenFile, authURL, err)
	}
	return config.Client(ctx, tok), nil
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	return tok, nil
}

// SaveToken caches an OAuth token for later runs.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// FetchAttachments downloads every supported resume attachment from messages
// matching the subject filter into the uploads directory. Returns the saved
// file paths. Per-message failures are logged and skipped.
func (gh *GmailHandler) FetchAttachments(ctx context.Context, subject string) ([]string, error) {
	if err := os.MkdirAll(gh.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	user := "me"
	query := fmt.Sprintf("subject:%s has:attachment", subject)

	r, err := gh.service.Users.Messages.List(user).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve messages: %w", err)
	}

	if len(r.Messages) == 0 {
		return nil, fmt.Errorf("no messages found with subject: %s", subject)
	}

	var saved []string
	for _, msg := range r.Messages {
		message, err := gh.service.Users.Messages.Get(user, msg.Id).Context(ctx).Do()
		if err != nil {
			gh.log.Warn("unable to retrieve message", zap.String("id", msg.Id), zap.Error(err))
			continue
		}

		sender := extractSenderName(message)

		for _, part := range message.Payload.Parts {
			if part.Filename == "" || part.Body.AttachmentId == "" {
				continue
			}
			if !SupportedExtension(part.Filename) {
				gh.log.Debug("skipping unsupported attachment", zap.String("filename", part.Filename))
				continue
			}

			attachment, err := gh.service.Users.Messages.Attachments.Get(user, msg.Id, part.Body.AttachmentId).Context(ctx).Do()
			if err != nil {
				gh.log.Warn("unable to retrieve attachment", zap.String("filename", part.Filename), zap.Error(err))
				continue
			}

			data, err := base64.URLEncoding.DecodeString(attachment.Data)
			if err != nil {
				gh.log.Warn("unable to decode attachment", zap.String("filename", part.Filename), zap.Error(err))
				continue
			}

			// Prefix with the sender so one inbox of "resume.pdf"
			// attachments still yields distinct candidates.
			filename := fmt.Sprintf("%s_%s", sender, filepath.Base(part.Filename))
			filePath := filepath.Join(gh.uploadsDir, filename)
			if err := os.WriteFile(filePath, data, 0644); err != nil {
				gh.log.Warn("unable to write file", zap.String("path", filePath), zap.Error(err))
				continue
			}

			gh.log.Info("downloaded resume attachment", zap.String("file", filename))
			saved = append(saved, filePath)
		}
	}

	if len(saved) == 0 {
		return nil, fmt.Errorf("no supported resume attachments found for subject: %s", subject)
	}

	return saved, nil
}

// extractSenderName extracts the sender's name from the From header.
func extractSenderName(message *gmail.Message) string {
	for _, header := range message.Payload.Headers {
		if header.Name != "From" {
			continue
		}
		from := header.Value
		if idx := strings.Index(from, "<"); idx > 0 {
			name := strings.TrimSpace(from[:idx])
			return strings.ReplaceAll(name, " ", "")
		}
		if idx := strings.Index(from, "@"); idx > 0 {
			return from[:idx]
		}
		return "unknown"
	}
	return "unknown"
}
