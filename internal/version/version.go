package version

import (
	"fmt"
	"time"
)

// Подставляются линкером при сборке (go build -ldflags "-X ...").
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Нумерация сборок ведется от дня выхода игры.
var releaseDay = time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC)

// BuildInfo - метаданные сборки в структурном виде, отдаются на /debug/version.
type BuildInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID переводит BuildDate в порядковый номер сборки:
// число полных суток, прошедших с releaseDay.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	day, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if day.Before(releaseDay) {
		return 0, fmt.Errorf("BuildDate %s is before release day", BuildDate)
	}

	return int(day.Sub(releaseDay) / (24 * time.Hour)), nil
}

// Info собирает метаданные сборки. Ошибку расчета номера не возвращает,
// а кладет в поле Error, чтобы эндпоинт версии отвечал всегда.
func Info() BuildInfo {
	info := BuildInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String возвращает однострочное описание сборки для лога запуска.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}

	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID, info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
