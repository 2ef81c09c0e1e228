// Package report accumulates run statistics and serializes the final report
// document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"dumptool/internal/scanner"

	"github.com/fatih/color"
)

// FileInfo describes the processed dump file. Captured once, never mutated.
type FileInfo struct {
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	SizeMB    float64   `json:"size_mb"`
	SizeGB    float64   `json:"size_gb"`
	Modified  time.Time `json:"modified"`
}

type StatementCounts struct {
	CreateTable int64 `json:"create_table"`
	Insert      int64 `json:"insert"`
	Alter       int64 `json:"alter"`
	Drop        int64 `json:"drop"`
	Other       int64 `json:"other"`
	Total       int64 `json:"total"`
}

// Stats is the per-run statistics object embedded in the report.
type Stats struct {
	FileInfo   FileInfo         `json:"file_info"`
	Statements StatementCounts  `json:"statements"`
	Tables     map[string]int64 `json:"tables"`
	LineCount  int64            `json:"line_count"`
}

func NewStats() *Stats {
	return &Stats{Tables: make(map[string]int64)}
}

// Count tallies one classified statement. CREATE TABLE and INSERT also
// increment the named table's entry.
func (s *Stats) Count(stmt scanner.Statement) {
	s.Statements.Total++
	switch stmt.Kind {
	case scanner.KindCreateTable:
		s.Statements.CreateTable++
	case scanner.KindInsert:
		s.Statements.Insert++
	case scanner.KindAlter:
		s.Statements.Alter++
	case scanner.KindDrop:
		s.Statements.Drop++
	default:
		s.Statements.Other++
	}
	if stmt.Table != "" && (stmt.Kind == scanner.KindCreateTable || stmt.Kind == scanner.KindInsert) {
		s.Tables[stmt.Table]++
	}
}

// Report is the persisted run document.
type Report struct {
	Timestamp      time.Time      `json:"timestamp"`
	Options        map[string]any `json:"options"`
	Statistics     *Stats         `json:"statistics"`
	ElapsedSeconds float64        `json:"execution_time_seconds"`
}

func New(stats *Stats, options map[string]any, elapsed time.Duration) *Report {
	return &Report{
		Timestamp:      time.Now(),
		Options:        options,
		Statistics:     stats,
		ElapsedSeconds: elapsed.Seconds(),
	}
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Load reads a previously saved report. Report-based restore uses the
// recorded table list.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}

// TableNames returns the recorded tables in sorted order.
func (r *Report) TableNames() []string {
	if r.Statistics == nil {
		return nil
	}
	names := make([]string, 0, len(r.Statistics.Tables))
	for name := range r.Statistics.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Print writes the console summary.
func (r *Report) Print() {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Println()
	cyan.Println("======================================================================")
	bold.Println("📊 ANALYSIS REPORT")
	cyan.Println("======================================================================")

	fmt.Printf("⏱️  Execution time: %.2f seconds\n", r.ElapsedSeconds)

	s := r.Statistics
	if s == nil {
		return
	}
	fmt.Printf("📄 Total lines processed: %d\n", s.LineCount)
	if s.FileInfo.SizeBytes > 0 {
		fmt.Printf("💾 File size: %.2f MB\n", s.FileInfo.SizeMB)
	}

	fmt.Println("\n📋 Statement statistics:")
	fmt.Printf("   • %-15s: %d\n", "Create Table", s.Statements.CreateTable)
	fmt.Printf("   • %-15s: %d\n", "Insert", s.Statements.Insert)
	fmt.Printf("   • %-15s: %d\n", "Alter", s.Statements.Alter)
	fmt.Printf("   • %-15s: %d\n", "Drop", s.Statements.Drop)
	fmt.Printf("   • %-15s: %d\n", "Other", s.Statements.Other)
	fmt.Printf("   • %-15s: %d\n", "Total", s.Statements.Total)

	if len(s.Tables) > 0 {
		fmt.Printf("\n📊 Tables found (%d):\n", len(s.Tables))
		names := make([]string, 0, len(s.Tables))
		for name := range s.Tables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("   • %s: %d statements\n", name, s.Tables[name])
		}
	}
	cyan.Println("======================================================================")
}
