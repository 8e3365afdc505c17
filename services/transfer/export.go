package transfer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"marga/database/repository/records"
)

// ExportService renders the whole practice into an xlsx workbook.
type ExportService struct {
	Repo records.Repository
}

var clientColumns = []string{
	"Case ID", "Client Name", "Age", "Gender", "Contact No.", "Address City",
	"Case Type", "Status", "Email", "Case History Document",
	"Session Summary Document", "Notes", "Date Opened", "Last Updated", "Counselor ID",
}

var sessionColumns = []string{
	"Session ID", "Case ID", "Start", "End", "Duration (mins)", "Type", "Location", "Comment",
}

// Export builds a two-sheet workbook, Clients and Sessions, and returns the
// serialized file.
func (s *ExportService) Export(ctx context.Context) ([]byte, error) {
	clients, err := s.Repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.Repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const clientsSheet = "Clients"
	// The default sheet becomes the Clients sheet.
	if err := f.SetSheetName(f.GetSheetName(0), clientsSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, clientsSheet, 1, clientColumns); err != nil {
		return nil, err
	}
	for i, c := range clients {
		row := []string{
			c.ID, c.Name, c.Age, c.Gender, c.Phone, c.City,
			c.CaseType, c.Status, c.Email, c.DocLink,
			c.SessionSummaryDocLink, c.Notes,
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.UpdatedAt.UTC().Format(time.RFC3339),
			c.TherapistID,
		}
		if err := writeRow(f, clientsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	const sessionsSheet = "Sessions"
	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return nil, err
	}
	if err := writeRow(f, sessionsSheet, 1, sessionColumns); err != nil {
		return nil, err
	}
	for i, sess := range sessions {
		row := []string{
			sess.ID, sess.ClientID,
			sess.StartTime.UTC().Format(time.RFC3339),
			sess.EndTime.UTC().Format(time.RFC3339),
			strconv.Itoa(sess.Interval().DurationMinutes()),
			sess.Type, sess.Location, sess.Comment,
		}
		if err := writeRow(f, sessionsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// ExportFilename is the attachment name for export downloads.
func ExportFilename() string {
	return fmt.Sprintf("marga_export_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
}
