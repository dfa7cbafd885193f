// Command screener ranks a directory of resume files against one job
// description without a running server: extract, parse, match, print.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"talentsift/internal/domain/matching"
	"talentsift/internal/infrastructure/textextract"
	"talentsift/internal/pipeline"
)

type fileResult struct {
	File            string   `json:"file"`
	CandidateEmail  string   `json:"candidate_email,omitempty"`
	MatchPercentage int      `json:"match_percentage"`
	Status          string   `json:"status"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Error           string   `json:"error,omitempty"`
}

func main() {
	jobPath := flag.String("job", "", "path to the job description text file")
	dir := flag.String("dir", "", "directory of resume files (pdf, docx, txt, md)")
	workers := flag.Int("workers", 4, "concurrent matching workers")
	top := flag.Int("top", 0, "print only the best N results (0 = all)")
	asJSON := flag.Bool("json", false, "emit JSON instead of a table")
	flag.Parse()

	if strings.TrimSpace(*jobPath) == "" || strings.TrimSpace(*dir) == "" {
		log.Fatalf("both -job and -dir are required")
	}

	jobText, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("read job description: %v", err)
	}

	engine, err := matching.NewEngine(matching.Config{})
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}
	jobExtraction := engine.Extract(matching.NormalizeText(string(jobText)))
	if len(jobExtraction.Keywords) == 0 {
		log.Fatalf("job description yields no keywords, nothing to match against")
	}

	files, err := collectResumeFiles(*dir)
	if err != nil {
		log.Fatalf("scan resume directory: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("no supported resume files under %s", *dir)
	}

	results := screen(engine, jobExtraction, files, *workers)

	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchPercentage != results[j].MatchPercentage {
			return results[i].MatchPercentage > results[j].MatchPercentage
		}
		return results[i].File < results[j].File
	})
	if *top > 0 && len(results) > *top {
		results = results[:*top]
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("encode results: %v", err)
		}
		return
	}
	printTable(results)
}

func collectResumeFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if textextract.Supported(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// screen fans the files out over the matching worker pool and maps each
// outcome back to its path.
func screen(engine *matching.Engine, job matching.Extraction, files []string, workers int) []fileResult {
	if workers > len(files) {
		workers = len(files)
	}
	pool := pipeline.NewWorkerPool(workers, workers*2)
	out := pool.Run(context.Background())

	names := make(map[uuid.UUID]string, len(files))
	var mu sync.Mutex
	emails := make(map[uuid.UUID]string, len(files))

	for _, path := range files {
		id := uuid.New()
		names[id] = path
		path := path
		pool.Submit(func(ctx context.Context) pipeline.Result {
			data, err := os.ReadFile(path)
			if err != nil {
				return pipeline.Result{ResumeID: id, Err: err}
			}
			text, err := textextract.Extract(filepath.Base(path), data)
			if err != nil {
				return pipeline.Result{ResumeID: id, Err: err}
			}
			parsed := engine.Parse(text)
			mu.Lock()
			emails[id] = parsed.Email
			mu.Unlock()
			return pipeline.Result{ResumeID: id, Match: engine.MatchExtraction(parsed, job)}
		})
	}
	pool.Close()

	results := make([]fileResult, 0, len(files))
	for item := range out {
		fr := fileResult{File: names[item.ResumeID]}
		if item.Err != nil {
			fr.Error = item.Err.Error()
			fr.Status = "failed"
		} else {
			mu.Lock()
			fr.CandidateEmail = emails[item.ResumeID]
			mu.Unlock()
			fr.MatchPercentage = item.Match.MatchPercentage
			fr.Status = string(item.Match.Status)
			fr.MatchedKeywords = item.Match.MatchedKeywords
			fr.MissingKeywords = item.Match.MissingKeywords
		}
		results = append(results, fr)
	}
	return results
}

func printTable(results []fileResult) {
	fmt.Printf("%-4s %-6s %-13s %-40s %s\n", "#", "MATCH", "STATUS", "FILE", "MISSING")
	for i, r := range results {
		if r.Error != "" {
			fmt.Printf("%-4d %-6s %-13s %-40s %s\n", i+1, "-", r.Status, truncate(r.File, 40), r.Error)
			continue
		}
		fmt.Printf("%-4d %-6s %-13s %-40s %s\n",
			i+1,
			fmt.Sprintf("%d%%", r.MatchPercentage),
			r.Status,
			truncate(r.File, 40),
			strings.Join(r.MissingKeywords, ", "),
		)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "…" + s[len(s)-n+1:]
}
