//go:build ignore

package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSampleAreas creates sample delivery-area files for local runs.
// An area is serviceable when it appears in at least AREAS_MIN_MATCH files (default 2).
func main() {
	dataDir := "data/areas"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	areas := map[string][]string{
		"areas1.gz": {
			"560001", // Bengaluru, both files
			"560034", // both files
			"400001", // Mumbai, both files
			"110001", // Delhi, file 1 only
		},
		"areas2.gz": {
			"560001",
			"560034",
			"400001",
			"600001", // Chennai, file 2 only
		},
	}

	for filename, codes := range areas {
		filePath := filepath.Join(dataDir, filename)

		if err := createAreaFile(filePath, codes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d areas\n", filePath, len(codes))
	}

	fmt.Println("\nServiceable with min match 2: 560001, 560034, 400001")
	fmt.Println("Rejected with min match 2:    110001, 600001")
}

func createAreaFile(filePath string, codes []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", code); err != nil {
			return fmt.Errorf("failed to write area: %w", err)
		}
	}

	return nil
}
