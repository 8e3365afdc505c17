// Package transfer moves practice records in and out of xlsx workbooks:
// bulk client import from a caseload spreadsheet and full export for backup.
package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"marga/database/repository/records"
	"marga/models"
	"marga/utils"
)

// headerMapping maps spreadsheet column headers to client fields.
var headerMapping = map[string]string{
	"Case ID":                  "id",
	"Client Name":              "name",
	"Age":                      "age",
	"Gender":                   "gender",
	"Contact No.":              "phone",
	"Address City":             "city",
	"Case Type":                "caseType",
	"Date Opened":              "createdAt",
	"Status":                   "status",
	"Case History Document":    "docLink",
	"Session Summary Document": "sessionSummaryDocLink",
}

// counselorHeader assigns imported clients to a therapist by display name
// when an admin runs the import.
const counselorHeader = "Counselor"

// excelEpoch is day zero of Excel's serial date numbering, already adjusted
// for the 1900 leap-year bug.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseCellDate accepts either an Excel serial number or a textual date.
// Unparsable values fall back to now, matching the legacy import.
func parseCellDate(value string, now time.Time) time.Time {
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	}
	for _, layout := range []string{"2006-01-02", "01-02-06", "1/2/2006", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return now
}

// ImportService ingests a caseload workbook into the record store.
type ImportService struct {
	Repo records.Repository
}

// Import parses the first sheet of the uploaded workbook and creates the
// clients it describes. Rows without a Case ID and rows duplicating an
// existing client are skipped and counted; nothing already stored is
// modified.
func (s *ImportService) Import(ctx context.Context, fileData []byte, caller models.Caller) (models.Result, error) {
	logger := utils.GetLogger()

	f, err := excelize.OpenReader(bytes.NewReader(fileData))
	if err != nil {
		return models.Result{
			Success: false, IsError: true,
			Message: "Failed to parse the Excel file. It may be corrupt or in an unsupported format.",
		}, nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Result{Success: false, IsError: true, Message: "The Excel file is empty or could not be read."}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) < 2 {
		return models.Result{Success: false, IsError: true, Message: "The Excel file is empty or could not be read."}, nil
	}

	headers := rows[0]
	therapistByName, err := s.therapistNameIndex(ctx)
	if err != nil {
		return models.Result{}, err
	}

	now := time.Now().UTC()
	added, skipped := 0, 0
	for _, row := range rows[1:] {
		client, counselor := mapRow(headers, row, now)
		if client.ID == "" {
			logger.Warn("skipping import row with no Case ID")
			skipped++
			continue
		}

		if caller.IsAdmin() {
			client.TherapistID = therapistByName[counselor]
		} else {
			client.TherapistID = caller.ID
		}
		client.UpdatedAt = now

		err := s.Repo.CreateClient(ctx, client)
		switch {
		case errors.Is(err, records.ErrDuplicateID):
			skipped++
		case err != nil:
			return models.Result{}, err
		default:
			added++
		}
	}

	return models.Result{
		Success: true,
		Message: fmt.Sprintf("Import complete. Clients: %d added, %d skipped as duplicates or invalid.", added, skipped),
	}, nil
}

func (s *ImportService) therapistNameIndex(ctx context.Context) (map[string]string, error) {
	therapists, err := s.Repo.ListTherapists(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(therapists))
	for _, t := range therapists {
		index[t.Name] = t.ID
	}
	return index, nil
}

// mapRow converts one sheet row into a client via headerMapping, returning
// the counselor name alongside for admin imports.
func mapRow(headers, row []string, now time.Time) (models.Client, string) {
	client := models.Client{CreatedAt: now}
	counselor := ""
	for i, header := range headers {
		if i >= len(row) || row[i] == "" {
			continue
		}
		value := row[i]
		if header == counselorHeader {
			counselor = value
			continue
		}
		switch headerMapping[header] {
		case "id":
			client.ID = value
		case "name":
			client.Name = value
		case "age":
			client.Age = value
		case "gender":
			client.Gender = value
		case "phone":
			client.Phone = value
		case "city":
			client.City = value
		case "caseType":
			client.CaseType = value
		case "status":
			client.Status = value
		case "docLink":
			client.DocLink = value
		case "sessionSummaryDocLink":
			client.SessionSummaryDocLink = value
		case "createdAt":
			client.CreatedAt = parseCellDate(value, now)
		}
	}
	return client, counselor
}
