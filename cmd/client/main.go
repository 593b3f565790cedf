// commitgate-upload is the command-line uploader: it packs the named files
// into one batch and submits them to a running gateway as a single commit.
package main

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"

	"github.com/adilgabb/commitgate/internal/utils"
	"github.com/adilgabb/commitgate/models"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "gateway base URL")
		token     = flag.String("token", "", "bearer token")
		channel   = flag.String("channel", "", "target channel name")
		folder    = flag.String("folder", "", "target folder")
		message   = flag.String("message", "", "commit message")
		requestID = flag.String("request-id", "", "idempotency key (generated when empty)")
	)
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: commitgate-upload [flags] <file>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	req := models.BatchRequest{
		UploadFolder:  *folder,
		ChannelName:   *channel,
		CommitMessage: *message,
		RequestID:     *requestID,
	}
	if req.RequestID == "" {
		req.RequestID = utils.NewUUIDGenerator().Generate()
	}

	for _, p := range paths {
		file, err := packFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", p, err)
			os.Exit(1)
		}
		req.Files = append(req.Files, file)
	}

	resp, err := submit(*serverURL, *token, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("commit %s on channel %s (%s)\n", resp.CommitID, resp.ChannelName, resp.Repo)
	if resp.Replayed {
		fmt.Println("replayed from a previous submission")
	}
	for _, f := range resp.Files {
		fmt.Printf("  %s -> %s\n", f.Name, f.Src)
	}
}

func packFile(path string) (models.FileInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FileInput{}, err
	}

	sum := sha256.Sum256(data)

	return models.FileInput{
		Name:          filepath.Base(path),
		MimeType:      mime.TypeByExtension(filepath.Ext(path)),
		ContentBase64: base64.StdEncoding.EncodeToString(data),
		SHA256:        hex.EncodeToString(sum[:]),
	}, nil
}

func submit(serverURL, token string, req models.BatchRequest) (*models.UploadResponse, error) {
	client := resty.New().SetBaseURL(serverURL)

	r := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	if token != "" {
		r.SetAuthToken(token)
	}

	resp, err := r.Post("/api/upload")
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr models.ErrorResponse
		if jsonErr := json.Unmarshal(resp.Body(), &apiErr); jsonErr == nil && apiErr.Code != "" {
			msg := fmt.Sprintf("upload failed: %s: %s", apiErr.Code, apiErr.Error)
			if apiErr.RetryAfter > 0 {
				msg += fmt.Sprintf(" (retry after %ds)", apiErr.RetryAfter)
			}
			for _, staged := range apiErr.StagedFiles {
				msg += "\n  staged but not committed: " + staged
			}
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("upload failed: http %d", resp.StatusCode())
	}

	var out models.UploadResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	return &out, nil
}
