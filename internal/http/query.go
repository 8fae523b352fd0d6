package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// encodeQuery normalizes params and renders each remaining field as a query
// value. Sequences are comma-joined.
func encodeQuery(params cdek.Document) url.Values {
	normalized := cdek.Normalize(params)
	if len(normalized) == 0 {
		return nil
	}

	values := make(url.Values, len(normalized))
	for key, value := range normalized {
		values.Set(key, queryValue(value))
	}

	return values
}

func queryValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case cdek.Money:
		return typed.String()
	case time.Time:
		return typed.Format(time.RFC3339)
	case []string:
		return strings.Join(typed, ",")
	case []int:
		parts := make([]string, len(typed))
		for i, n := range typed {
			parts[i] = strconv.Itoa(n)
		}

		return strings.Join(parts, ",")
	case []interface{}:
		parts := make([]string, len(typed))
		for i, element := range typed {
			parts[i] = queryValue(element)
		}

		return strings.Join(parts, ",")
	case fmt.Stringer:
		return typed.String()
	case cdek.Document, map[string]interface{}:
		data, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(data)
	default:
		return fmt.Sprint(typed)
	}
}
