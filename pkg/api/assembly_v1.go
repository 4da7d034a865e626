// pkg/api/assembly_v1.go
package api

// AssemblyV1 is the stable JSON/JSONL schema for one assembled input.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AssemblyV1 struct {
	RunID      string `json:"run_id"`
	Source     string `json:"source"` // input path, "-" for stdin
	Mode       string `json:"mode"`
	Matcher    string `json:"matcher"`
	Workers    int    `json:"workers,omitempty"` // parallel mode only
	Fragments  int    `json:"fragments"`
	Length     int    `json:"length"`
	Sequence   string `json:"sequence"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}
