// Package google implements the sheets.RecordWriter port against the
// Google Sheets API. Authentication uses an OAuth client plus a stored
// token, both provided as JSON blobs or file paths; the oauth-init command
// produces the token interactively.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"inventory/internal/sheets"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ sheets.RecordWriter = (*Client)(nil)

// Options configures the Sheets client. Exactly one of ClientJSON or
// ClientFile must be set, likewise for the token.
type Options struct {
	SpreadsheetID string
	SheetName     string
	ClientJSON    string
	ClientFile    string
	TokenJSON     string
	TokenFile     string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(opts.SheetName)
	if sheetName == "" {
		sheetName = "Records"
	}

	clientJSON, err := resolveJSON(opts.ClientJSON, opts.ClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client credentials: %w", err)
	}
	tokenJSON, err := resolveJSON(opts.TokenJSON, opts.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	cfg, err := googleauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(tokenJSON, tok); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func resolveJSON(inline, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inline) != "":
		return []byte(inline), nil
	case strings.TrimSpace(file) != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return b, nil
	default:
		return nil, errors.New("neither inline JSON nor file path provided")
	}
}

// Append writes one record row at the bottom of the sheet and returns its
// range reference. The layout is domain, record id, export time, then the
// domain-specific cells.
func (c *Client) Append(ctx context.Context, row sheets.Row) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if row.Domain == "" {
		return "", errors.New("row has no domain")
	}

	// Find the next empty row from the current sheet height.
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get sheet dimensions for %s: %w", c.sheetName, err)
	}
	nextRow := len(resp.Values) + 1

	cells := exportCells(row, time.Now())
	dataRange := rowRange(c.sheetName, nextRow, len(cells))
	vr := &gsheet.ValueRange{Values: [][]any{cells}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("update %s: %w", dataRange, err)
	}

	return dataRange, nil
}

// exportCells prefixes the record's cells with domain, id and export time.
func exportCells(row sheets.Row, now time.Time) []any {
	cells := make([]any, 0, len(row.Cells)+3)
	cells = append(cells, row.Domain, row.ID, now.Format("2006-01-02 15:04:05"))
	return append(cells, row.Cells...)
}

// rowRange builds an A1-notation range covering width columns of one row.
func rowRange(sheetName string, rowNum, width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s!A%d:%s%d", sheetName, rowNum, columnName(width-1), rowNum)
}

// columnName converts a zero-based column index to its A1 letter form.
func columnName(idx int) string {
	name := ""
	for {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
		if idx < 0 {
			return name
		}
	}
}
