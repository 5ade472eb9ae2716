package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	pkgerrors "github.com/Jackson-sch/sistema-escolar-sub001/pkg/errors"
)

const timestampLayout = "2006-01-02T15:04:05Z07:00"

// isNotFound GORM 未找到记录
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate 数据库唯一约束冲突（需开启 TranslateError）
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// normalizeCodigo 代码统一去空格并大写
func normalizeCodigo(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// trimmedPtr 去空格后为空返回 nil
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ── 时间 ──

// parseHora 解析 HH:MM
func parseHora(field, s string) (datatypes.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, pkgerrors.Validation(field, fmt.Sprintf("La hora %s no tiene el formato HH:MM", s))
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), 0, 0), nil
}

// formatHora datatypes.Time → HH:MM
func formatHora(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// parseFecha 解析 YYYY-MM-DD
func parseFecha(field, s string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return datatypes.Date{}, pkgerrors.Validation(field, fmt.Sprintf("La fecha %s no tiene el formato AAAA-MM-DD", s))
	}
	return datatypes.Date(t), nil
}

func formatFecha(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

// plural 数量 + 单/复数名词
func plural(n int64, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
