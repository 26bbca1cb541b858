// Package normalize 把字段可能缺失的原始文档整理为带默认值的扁平行
package normalize

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"NodeDashboard/internal/model"
)

// DateLayout 日期键格式
const DateLayout = "2006-01-02"

// Document 从文档库读出的原始记录
type Document map[string]interface{}

// Row 补齐默认值后的扁平行
type Row map[string]interface{}

// Defaults 字段名到默认值
type Defaults map[string]interface{}

// Flatten 取出 defaults 中的每个字段，缺失或为 null 时使用默认值，时间类型截断为 YYYY-MM-DD
func Flatten(doc Document, defaults Defaults) Row {
	row := make(Row, len(defaults))
	for field, def := range defaults {
		value, ok := doc[field]
		if !ok || value == nil {
			row[field] = def
			continue
		}
		if date, isDate := DateKey(value); isDate {
			row[field] = date
			continue
		}
		row[field] = value
	}
	return row
}

// DateKey 把时间类型的值转为 UTC 日历日，非时间类型返回 false
func DateKey(v interface{}) (string, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(DateLayout), true
	case *time.Time:
		if t == nil {
			return "", false
		}
		return t.UTC().Format(DateLayout), true
	case primitive.DateTime:
		return t.Time().UTC().Format(DateLayout), true
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC().Format(DateLayout), true
	default:
		return "", false
	}
}

// ParseDateKey 从字符串字段中取日期：RFC3339 时间戳按 UTC 截断，其余取 YYYY-MM-DD 前缀
func ParseDateKey(s string) (string, bool) {
	if s == "" || s == model.Missing {
		return "", false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(DateLayout), true
	}
	if len(s) < len(DateLayout) {
		return "", false
	}
	if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
		return t.Format(DateLayout), true
	}
	return "", false
}

// String 把透传值转为字符串，非字符串标量按其文本形式输出
func String(v interface{}, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		return s
	case primitive.ObjectID:
		return s.Hex()
	case bool:
		return strconv.FormatBool(s)
	case int32, int64, int, float64:
		if f, ok := Float(s); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
	}
	return def
}

// Float 数值强转，兼容 BSON 的 int32/int64/double 与数字字符串
func Float(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int 整数强转，小数向零截断
func Int(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err == nil {
			return i, true
		}
	}
	if f, ok := Float(v); ok {
		return int64(f), true
	}
	return 0, false
}

// Bool 布尔强转，只接受 bool 与 "true"/"false"
func Bool(v interface{}, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return def
}

// asMap 兼容 bson.M、bson.D 与普通 map
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case primitive.M:
		return m, true
	case Document:
		return m, true
	case primitive.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

// asSlice 兼容 bson.A 与普通切片
func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case primitive.A:
		return s, true
	case []string:
		out := make([]interface{}, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}
