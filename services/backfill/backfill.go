package backfill

import (
	"calorie-tracker/enums"
	"calorie-tracker/models"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

// 批次 insert 一次筆數
const chunkSize = 3000

var ErrMalformedRow = errors.New("malformed workbook row")

// RowSource is the read side of the workbook.
type RowSource interface {
	Rows(name string) ([][]string, error)
}

// Result counts the rows copied per worksheet.
type Result struct {
	Entries     int
	GoalSummary int
	WeekTotals  int
	SkippedRows int
}

type BackfillService struct {
	db     *gorm.DB
	source RowSource
	logger *logrus.Logger
}

func NewBackfillService(db *gorm.DB, source RowSource, logger *logrus.Logger) *BackfillService {
	return &BackfillService{db: db, source: source, logger: logger}
}

// Run replaces the database tables with the workbook content in one transaction.
// Rows that cannot be parsed are skipped and counted.
func (b *BackfillService) Run() (Result, error) {
	var result Result

	entries, skipped, err := b.entryRecords()
	if err != nil {
		return result, err
	}
	result.SkippedRows += skipped
	summaries, skipped, err := b.goalSummaries()
	if err != nil {
		return result, err
	}
	result.SkippedRows += skipped
	weekTotals, skipped, err := b.weekTotals()
	if err != nil {
		return result, err
	}
	result.SkippedRows += skipped

	tx := b.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			b.log().WithFields(logrus.Fields{"task": "backfill"}).Error("交易失敗: panic")
			tx.Rollback()
		}
	}()
	if err := tx.Error; err != nil {
		return result, fmt.Errorf("begin backfill: %w", err)
	}

	// 先清掉舊資料，整份 workbook 重新寫入
	for _, model := range []interface{}{&models.EntryRecord{}, &models.GoalSummary{}, &models.WeekTotal{}} {
		if err := tx.Delete(model).Error; err != nil {
			tx.Rollback()
			return result, fmt.Errorf("clear table: %w", err)
		}
	}

	for _, batch := range [][]interface{}{entries, summaries, weekTotals} {
		if len(batch) == 0 {
			continue
		}
		if err := gormbulk.BulkInsert(tx, batch, chunkSize); err != nil {
			b.logFailure(err)
			tx.Rollback()
			return result, fmt.Errorf("bulk insert: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return result, fmt.Errorf("commit backfill: %w", err)
	}

	result.Entries = len(entries)
	result.GoalSummary = len(summaries)
	result.WeekTotals = len(weekTotals)
	b.log().WithFields(logrus.Fields{
		"task":    "backfill",
		"entries": result.Entries,
		"goal":    result.GoalSummary,
		"week":    result.WeekTotals,
		"skipped": result.SkippedRows,
	}).Info("workbook synced")
	return result, nil
}

func (b *BackfillService) entryRecords() ([]interface{}, int, error) {
	rows, err := b.dataRows(enums.EntriesSheet)
	if err != nil {
		return nil, 0, err
	}
	var records []interface{}
	skipped := 0
	now := time.Now()
	for i, row := range rows {
		if len(row) < 6 {
			skipped += b.skip(enums.EntriesSheet, i, ErrMalformedRow)
			continue
		}
		values, err := parseInts(row[2:6])
		if err != nil {
			skipped += b.skip(enums.EntriesSheet, i, err)
			continue
		}
		records = append(records, models.EntryRecord{
			ID:        uuid.NewString(),
			LoggedAt:  row[0],
			Name:      row[1],
			Calories:  values[0],
			Protein:   values[1],
			Fat:       values[2],
			Carbs:     values[3],
			CreatedAt: &now,
		})
	}
	return records, skipped, nil
}

func (b *BackfillService) goalSummaries() ([]interface{}, int, error) {
	rows, err := b.dataRows(enums.GoalSheet)
	if err != nil {
		return nil, 0, err
	}
	var records []interface{}
	skipped := 0
	now := time.Now()
	for i, row := range rows {
		// date, p, f, c, cal, pg, fg, cg, calg；沒追蹤熱量時 cal / calg 是空的
		if len(row) < 8 {
			skipped += b.skip(enums.GoalSheet, i, ErrMalformedRow)
			continue
		}
		// 結尾的空白格會被 GetRows 截掉，補回九欄
		cells := make([]string, 9)
		copy(cells, row)

		values, err := parseInts([]string{cells[1], cells[2], cells[3], cells[5], cells[6], cells[7]})
		if err != nil {
			skipped += b.skip(enums.GoalSheet, i, err)
			continue
		}
		record := models.GoalSummary{
			SummaryDate:     cells[0],
			ProteinConsumed: values[0],
			FatConsumed:     values[1],
			CarbsConsumed:   values[2],
			ProteinGoal:     values[3],
			FatGoal:         values[4],
			CarbsGoal:       values[5],
			CreatedAt:       &now,
		}
		if strings.TrimSpace(cells[8]) != "" {
			calorieValues, err := parseInts([]string{cells[4], cells[8]})
			if err != nil {
				skipped += b.skip(enums.GoalSheet, i, err)
				continue
			}
			calories, calorieGoal := calorieValues[0], calorieValues[1]
			record.CaloriesConsumed = &calories
			record.CalorieGoal = &calorieGoal
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

func (b *BackfillService) weekTotals() ([]interface{}, int, error) {
	rows, err := b.dataRows(enums.WeekTotalSheet)
	if err != nil {
		return nil, 0, err
	}
	var records []interface{}
	skipped := 0
	now := time.Now()
	for i, row := range rows {
		if len(row) < 5 {
			skipped += b.skip(enums.WeekTotalSheet, i, ErrMalformedRow)
			continue
		}
		values, err := parseInts(row[1:5])
		if err != nil {
			skipped += b.skip(enums.WeekTotalSheet, i, err)
			continue
		}
		records = append(records, models.WeekTotal{
			SummaryDate:   row[0],
			TotalCalories: values[0],
			TotalProtein:  values[1],
			TotalFat:      values[2],
			TotalCarbs:    values[3],
			CreatedAt:     &now,
		})
	}
	return records, skipped, nil
}

// dataRows drops the header row.
func (b *BackfillService) dataRows(name string) ([][]string, error) {
	rows, err := b.source.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", name, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func (b *BackfillService) skip(sheet string, index int, err error) int {
	// +2: header 佔一列，excel 從 1 開始
	b.log().WithFields(logrus.Fields{"task": "backfill", "sheet": sheet, "row": index + 2}).Warn(err.Error())
	return 1
}

func (b *BackfillService) logFailure(err error) {
	b.log().WithFields(logrus.Fields{"task": "backfill", "error_message": err.Error()}).Error("交易失敗")
}

func (b *BackfillService) log() *logrus.Logger {
	if b.logger == nil {
		return logrus.StandardLogger()
	}
	return b.logger
}

func parseInts(cells []string) ([]int, error) {
	values := make([]int, len(cells))
	for i, cell := range cells {
		value, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedRow, cell)
		}
		values[i] = value
	}
	return values, nil
}
