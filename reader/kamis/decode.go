package kamis

import (
	"encoding/json"
	"strings"

	"agriflow/models"
)

// envelopePaths lists the wrapper shapes the provider has been observed
// to use, tried in order. Each path ends at either a single item object
// or an array of items.
var envelopePaths = [][]string{
	{"response", "body", "items", "item"},
	{"body", "items", "item"},
	{"data", "item"},
	{"item"},
}

// Raw keys that carry a provider-level status code or message.
var (
	statusCodeKeys = []string{"resultCode", "result_code", "error_code", "code"}
	statusMsgKeys  = []string{"resultMsg", "result_msg", "message", "msg"}
)

// noDataCodes are provider codes meaning "query understood, nothing to
// return". They map to an empty item list, not an error.
var noDataCodes = map[string]struct{}{
	"001": {},
	"900": {},
}

// Decode extracts the flat item list from an arbitrary payload. Any
// parse failure or unknown envelope yields an empty list; decoding
// failure is data, not a control-flow fault.
func Decode(payload []byte) (items []models.RawRecord, code string, msg string) {
	var root interface{}
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, "", ""
	}

	rootMap, ok := root.(map[string]interface{})
	if !ok {
		return nil, "", ""
	}

	code, msg = findStatus(rootMap)
	if _, noData := noDataCodes[code]; noData {
		return nil, code, msg
	}
	if code != "" && strings.Contains(strings.ToLower(msg), "no data") {
		return nil, code, msg
	}

	for _, path := range envelopePaths {
		node, found := walk(rootMap, path)
		if !found {
			continue
		}
		if recs := toRecords(node); len(recs) > 0 {
			return recs, code, msg
		}
	}
	return nil, code, msg
}

// walk descends the wrapper keys of one envelope shape.
func walk(node map[string]interface{}, path []string) (interface{}, bool) {
	var cur interface{} = node
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// toRecords normalizes a single-object-or-array item node to a slice.
func toRecords(node interface{}) []models.RawRecord {
	switch t := node.(type) {
	case map[string]interface{}:
		return []models.RawRecord{models.RawRecord(t)}
	case []interface{}:
		recs := make([]models.RawRecord, 0, len(t))
		for _, el := range t {
			if m, ok := el.(map[string]interface{}); ok {
				recs = append(recs, models.RawRecord(m))
			}
		}
		return recs
	default:
		return nil
	}
}

// findStatus looks for a provider status code and message at the root
// and under the common header/response wrappers. The provider's error
// dialect `{"data": ["001"]}` is handled as well.
func findStatus(root map[string]interface{}) (string, string) {
	scopes := []map[string]interface{}{root}
	for _, wrapper := range []string{"response", "header", "body"} {
		if m, ok := root[wrapper].(map[string]interface{}); ok {
			scopes = append(scopes, m)
			if h, ok := m["header"].(map[string]interface{}); ok {
				scopes = append(scopes, h)
			}
		}
	}

	var code, msg string
	for _, scope := range scopes {
		if code == "" {
			code = firstString(scope, statusCodeKeys)
		}
		if msg == "" {
			msg = firstString(scope, statusMsgKeys)
		}
	}

	if code == "" {
		if arr, ok := root["data"].([]interface{}); ok && len(arr) == 1 {
			if s, ok := arr[0].(string); ok {
				code = s
			}
		}
	}
	return code, msg
}

func firstString(scope map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := scope[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
