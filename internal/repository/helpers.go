package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/planit/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts the SurrealDB record ID representation (string,
// RecordID, or nested map) into the "table:id" string form used by the API.
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		if idVal, ok := v["id"]; ok && tb != "" {
			if s, ok := idVal.(string); ok {
				return tb + ":" + s
			}
		}
	}

	// JSON round-trip fallback for exotic client representations
	if data, err := json.Marshal(id); err == nil {
		var rid models.RecordID
		if err := json.Unmarshal(data, &rid); err == nil && rid.Table != "" {
			return fmt.Sprintf("%s:%v", rid.Table, rid.ID)
		}
	}
	return ""
}

// unwrapRecord navigates the SurrealDB response structure down to a single
// record map. Returns database.ErrNotFound for empty results.
func unwrapRecord(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, database.ErrNotFound
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// unwrapRecords navigates a Query response down to the list of record maps.
func unwrapRecords(result []interface{}) []map[string]interface{} {
	var records []map[string]interface{}
	for _, entry := range result {
		resp, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		rows, ok := resp["result"].([]interface{})
		if !ok {
			// direct record
			records = append(records, resp)
			continue
		}
		for _, row := range rows {
			if rec, ok := row.(map[string]interface{}); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

// decodeRecord converts a normalized record map into a model struct via a
// JSON round-trip. The id field is converted to "table:id" form first.
func decodeRecord(data map[string]interface{}, v interface{}) error {
	if id, ok := data["id"]; ok {
		data["id"] = convertSurrealID(id)
	}
	normalizeTimes(data)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, v); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// normalizeTimes rewrites SurrealDB CustomDateTime values into RFC 3339
// strings so the JSON round-trip in decodeRecord can parse them.
func normalizeTimes(data map[string]interface{}) {
	for key, val := range data {
		switch t := val.(type) {
		case models.CustomDateTime:
			data[key] = t.Time.Format(time.RFC3339Nano)
		case *models.CustomDateTime:
			if t != nil {
				data[key] = t.Time.Format(time.RFC3339Nano)
			}
		}
	}
}

// createdRecord holds the fields SurrealDB fills in on CREATE
type createdRecord struct {
	ID        string
	CreatedOn time.Time
	UpdatedOn time.Time
}

// extractCreatedRecord pulls the generated id and timestamps out of a
// CREATE query result.
func extractCreatedRecord(result []interface{}) (*createdRecord, error) {
	if len(result) == 0 {
		return nil, errors.New("empty create result")
	}
	data, err := unwrapRecord(result[0])
	if err != nil {
		return nil, err
	}
	return &createdRecord{
		ID:        convertSurrealID(data["id"]),
		CreatedOn: getTime(data, "created_on"),
		UpdatedOn: getTime(data, "updated_on"),
	}, nil
}

// nilIfEmpty returns nil for empty strings so SurrealDB stores NONE
// instead of ""
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// normalizeLinks rewrites record-link fields into "table:id" strings so
// decodeRecord can round-trip them into string-typed model fields.
func normalizeLinks(data map[string]interface{}, keys ...string) {
	for _, key := range keys {
		if v, ok := data[key]; ok && v != nil {
			if _, isString := v.(string); !isString {
				data[key] = convertSurrealID(v)
			}
		}
	}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	case models.CustomDateTime:
		return v.Time
	case *models.CustomDateTime:
		if v != nil {
			return v.Time
		}
	}
	return time.Time{}
}

// extractCount extracts the count from a SurrealDB count query result
func extractCount(result interface{}) int {
	data, err := unwrapRecord(result)
	if err != nil {
		return 0
	}
	switch c := data["count"].(type) {
	case float64:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}
