package backfill

import (
	"calorie-tracker/database"
	"calorie-tracker/enums"
	"calorie-tracker/models"
	"calorie-tracker/structs"
	"errors"
	"testing"

	"github.com/jinzhu/gorm"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

type memorySource map[string][][]string

func (m memorySource) Rows(name string) ([][]string, error) {
	return m[name], nil
}

type failingSource struct{}

func (failingSource) Rows(name string) ([][]string, error) {
	return nil, errors.New("workbook locked")
}

func openTestDB(t *testing.T) *gorm.DB {
	var config structs.EnviromentModel
	config.Database.Client = "sqlite3"
	config.Database.Path = ":memory:"
	config.Database.MaxIdle = 1
	config.Database.MaxOpenConn = 1
	db, err := database.InitDatabasePool(config)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate error = %v", err)
	}
	return db
}

func workbook() memorySource {
	return memorySource{
		enums.EntriesSheet: {
			{"Timestamp", "Food", "Calories", "Protein", "Fat", "Carbs"},
			{"2024-05-01 08:00:00", "eggs", "140", "12", "10", "1"},
			{"2024-05-01 12:30:00", "rice", "200", "4", "0", "45"},
			{"2024-05-01 13:00:00", "broken", "x", "1", "1", "1"},
		},
		enums.GoalSheet: {
			{"Date", "Protein Consumed", "Fat Consumed", "Carbs Consumed", "Calories Consumed", "Protein Goal", "Fat Goal", "Carbs Goal", "Calorie Goal"},
			{"2024-05-01", "16", "10", "46", "", "100", "70", "300"},
			{"2024-05-01", "16", "10", "46", "340", "120", "70", "300", "2000"},
			{"2024-05-01", "16", "10", "46", "", "100", "70", "300", ""},
		},
		enums.WeekTotalSheet: {
			{"Date", "Total Calories", "Total Protein", "Total Fat", "Total Carbs"},
			{"2024-05-01", "2380", "112", "70", "322"},
			{"2024-05-01"},
		},
	}
}

func TestBackfill_Run(t *testing.T) {
	db := openTestDB(t)
	result, err := NewBackfillService(db, workbook(), nil).Run()
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if result.Entries != 2 || result.GoalSummary != 3 || result.WeekTotals != 1 || result.SkippedRows != 2 {
		t.Errorf("result = %+v", result)
	}

	var entries []models.EntryRecord
	db.Order("logged_at").Find(&entries)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Name != "eggs" || entries[1].Carbs != 45 {
		t.Errorf("entries = %+v", entries)
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Error("every entry should get its own id")
	}

	var summaries []models.GoalSummary
	db.Order("id").Find(&summaries)
	if len(summaries) != 3 {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].CalorieGoal != nil || summaries[0].CarbsGoal != 300 {
		t.Errorf("summary without calories = %+v", summaries[0])
	}
	if summaries[1].CalorieGoal == nil || *summaries[1].CalorieGoal != 2000 || *summaries[1].CaloriesConsumed != 340 {
		t.Errorf("summary with calories = %+v", summaries[1])
	}
	if summaries[1].ProteinGoal != 120 || summaries[1].CarbsGoal != 300 {
		t.Errorf("goal columns shifted: %+v", summaries[1])
	}
	if summaries[2].CalorieGoal != nil || summaries[2].CaloriesConsumed != nil {
		t.Errorf("empty calorie cells should stay NULL: %+v", summaries[2])
	}

	var week models.WeekTotal
	db.First(&week)
	if week.TotalCalories != 2380 || week.TotalCarbs != 322 {
		t.Errorf("week total = %+v", week)
	}
}

func TestBackfill_RunTwiceReplaces(t *testing.T) {
	db := openTestDB(t)
	service := NewBackfillService(db, workbook(), nil)
	for i := 0; i < 2; i++ {
		if _, err := service.Run(); err != nil {
			t.Fatalf("Run #%d error = %v", i+1, err)
		}
	}
	var count int
	db.Model(&models.EntryRecord{}).Count(&count)
	if count != 2 {
		t.Errorf("entry count = %d, want 2", count)
	}
}

func TestBackfill_HeaderOnly(t *testing.T) {
	db := openTestDB(t)
	source := memorySource{
		enums.EntriesSheet: {{"Timestamp", "Food", "Calories", "Protein", "Fat", "Carbs"}},
	}
	result, err := NewBackfillService(db, source, nil).Run()
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if result != (Result{}) {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestBackfill_SourceError(t *testing.T) {
	if _, err := NewBackfillService(nil, failingSource{}, nil).Run(); err == nil {
		t.Error("unreadable workbook should fail")
	}
}

func TestBackfill_GoalRowTooShort(t *testing.T) {
	source := memorySource{
		enums.GoalSheet: {
			{"Date"},
			{"2024-05-01", "16", "10", "46", "100", "70", "300"},
		},
	}
	records, skipped, err := NewBackfillService(nil, source, nil).goalSummaries()
	if err != nil {
		t.Fatalf("goalSummaries error = %v", err)
	}
	if len(records) != 0 || skipped != 1 {
		t.Errorf("records = %d, skipped = %d, want 0 and 1", len(records), skipped)
	}
}

func TestBackfill_LogFailureFields(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	NewBackfillService(nil, memorySource{}, logger).logFailure(errors.New("duplicate key"))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry written")
	}
	if entry.Message != "交易失敗" || entry.Data["error_message"] != "duplicate key" {
		t.Errorf("log entry = %q %v", entry.Message, entry.Data)
	}
}

func TestParseInts(t *testing.T) {
	values, err := parseInts([]string{"1", " 2 ", "30"})
	if err != nil || values[1] != 2 || values[2] != 30 {
		t.Errorf("parseInts = %v, %v", values, err)
	}
	if _, err := parseInts([]string{"1.5"}); !errors.Is(err, ErrMalformedRow) {
		t.Errorf("err = %v, want ErrMalformedRow", err)
	}
}
