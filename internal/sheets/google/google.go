// Package google exports records to a Google Sheets spreadsheet, one sheet
// per record kind. Authentication uses a service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"financas/internal/core"
	ports "financas/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	billsSheet    string
	incomeSheet   string
}

// Ensure interface conformance
var (
	_ ports.BillExporter       = (*Client)(nil)
	_ ports.ReceivableExporter = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS). Optional sheet names:
// GOOGLE_BILLS_SHEET (default "Contas"), GOOGLE_INCOME_SHEET
// (default "Recebidos").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	billsSheet := strings.TrimSpace(os.Getenv("GOOGLE_BILLS_SHEET"))
	if billsSheet == "" {
		billsSheet = "Contas"
	}
	incomeSheet := strings.TrimSpace(os.Getenv("GOOGLE_INCOME_SHEET"))
	if incomeSheet == "" {
		incomeSheet = "Recebidos"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		billsSheet:    billsSheet,
		incomeSheet:   incomeSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// AppendBill appends one bill row: id, status, supplier, amount, due date,
// installments.
func (c *Client) AppendBill(ctx context.Context, b core.Bill) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	vr := &gsheet.ValueRange{Values: [][]any{{
		b.ID,
		string(b.Status),
		b.Supplier,
		b.Amount.Reais(),
		b.DueDate.String(),
		b.Installments,
	}}}

	rng := fmt.Sprintf("%s!A:F", c.billsSheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append bill to sheet %s: %w", c.billsSheet, err)
	}

	slog.InfoContext(ctx, "Bill exported to spreadsheet",
		"id", b.ID,
		"sheet", c.billsSheet)
	return nil
}

// AppendReceivable appends one receivable row: id, status, description,
// amount, received date, category, source.
func (c *Client) AppendReceivable(ctx context.Context, r core.Receivable) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	vr := &gsheet.ValueRange{Values: [][]any{{
		r.ID,
		string(r.Status),
		r.Description,
		r.Amount.Reais(),
		r.ReceivedDate.String(),
		r.Category,
		r.Source,
	}}}

	rng := fmt.Sprintf("%s!A:G", c.incomeSheet)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append receivable to sheet %s: %w", c.incomeSheet, err)
	}

	slog.InfoContext(ctx, "Receivable exported to spreadsheet",
		"id", r.ID,
		"sheet", c.incomeSheet)
	return nil
}
