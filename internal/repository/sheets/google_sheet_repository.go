package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/feedlot/internal/config"
	"github.com/mamadbah2/feedlot/internal/domain/models"
)

const (
	dateLayout    = "2006-01-02"
	snapshotRange = "Dashboard!A:J"
)

// Repository defines the export operations supported by the Google Sheets
// adapter.
type Repository interface {
	AppendDashboardRow(ctx context.Context, snapshot models.DashboardSnapshot) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDashboardRow appends one dated fleet-aggregate row to the dashboard
// sheet.
func (r *GoogleSheetRepository) AppendDashboardRow(ctx context.Context, snapshot models.DashboardSnapshot) error {
	values := []interface{}{
		snapshot.Date.Format(dateLayout),
		snapshot.TotalPens,
		snapshot.ActivePens,
		snapshot.TotalAnimals,
		snapshot.ActiveAnimals,
		snapshot.AverageFCO,
		snapshot.TotalFeedConsumed,
		snapshot.TotalCost,
		snapshot.TotalWeightGain,
		snapshot.AverageDailyGainPerAnimal,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row into range %s: %w", snapshotRange, err)
	}

	r.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
