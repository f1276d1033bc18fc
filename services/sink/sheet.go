package sink

import (
	"calorie-tracker/enums"
	"calorie-tracker/structs"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var sheetHeaders = map[string][]interface{}{
	enums.EntriesSheet: {"Timestamp", "Food", "Calories", "Protein", "Fat", "Carbs"},
	enums.GoalSheet: {"Date", "Protein Consumed", "Fat Consumed", "Carbs Consumed", "Calories Consumed",
		"Protein Goal", "Fat Goal", "Carbs Goal", "Calorie Goal"},
	enums.WeekTotalSheet: {"Date", "Total Calories", "Total Protein", "Total Fat", "Total Carbs"},
}

// Sheet persists rows into an XLSX workbook with one worksheet per stream.
// The workbook is saved after every append.
type Sheet struct {
	sync.Mutex
	path   string
	file   *excelize.File
	logger *logrus.Logger
}

// OpenSheet opens the workbook at path, creating it when it does not exist.
// The Goal sheet keeps its calorie columns whether or not calories are tracked.
func OpenSheet(path string, logger *logrus.Logger) (*Sheet, error) {
	var file *excelize.File
	if _, err := os.Stat(path); err == nil {
		if file, err = excelize.OpenFile(path); err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		file = excelize.NewFile()
	} else {
		return nil, fmt.Errorf("stat workbook %s: %w", path, err)
	}

	s := &Sheet{path: path, file: file, logger: logger}
	for _, name := range []string{enums.EntriesSheet, enums.GoalSheet, enums.WeekTotalSheet} {
		if err := s.ensureSheet(name, sheetHeaders[name]); err != nil {
			return nil, err
		}
	}
	if err := file.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook %s: %w", path, err)
	}
	return s, nil
}

func (s *Sheet) ensureSheet(name string, headers []interface{}) error {
	index, err := s.file.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if index == -1 {
		if _, err := s.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	rows, err := s.file.GetRows(name)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		if err := s.file.SetSheetRow(name, "A1", &headers); err != nil {
			return fmt.Errorf("write header %s: %w", name, err)
		}
	}
	return nil
}

func (s *Sheet) AppendEntry(ctx context.Context, row structs.EntryRow) error {
	return s.appendRow(enums.EntriesSheet, row.Cells())
}

func (s *Sheet) AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error {
	return s.appendRow(enums.GoalSheet, row.Cells())
}

func (s *Sheet) AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error {
	return s.appendRow(enums.WeekTotalSheet, row.Cells())
}

// Rows returns every row of a worksheet, header included.
func (s *Sheet) Rows(name string) ([][]string, error) {
	s.Lock()
	defer s.Unlock()
	return s.file.GetRows(name)
}

func (s *Sheet) Close() error {
	s.Lock()
	defer s.Unlock()
	return s.file.Close()
}

func (s *Sheet) appendRow(name string, cells []interface{}) error {
	s.Lock()
	defer s.Unlock()

	rows, err := s.file.GetRows(name)
	if err != nil {
		return writeFailure(enums.SheetSink, name, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return writeFailure(enums.SheetSink, name, err)
	}
	if err := s.file.SetSheetRow(name, cell, &cells); err != nil {
		return writeFailure(enums.SheetSink, name, err)
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return writeFailure(enums.SheetSink, name, err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"task": "sheet", "sheet": name, "row": len(rows) + 1}).Debug("row appended")
	}
	return nil
}
