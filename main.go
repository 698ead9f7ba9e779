// Generates the extension icon set dist/icons/icon{16,48,128}.png.
// Run: go run .
package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"icon-gen/unitext"
)

var ErrorLogger *log.Logger = log.New(os.Stderr, "ERROR : ", log.Lshortfile)

const outputDir = "dist/icons"

var iconSizes = []int{16, 48, 128}

func main() {
	if err := unitext.CheckAvailable(); err != nil {
		fmt.Println("텍스트 렌더링 기능을 사용할 수 없습니다.")
		fmt.Println("go mod download 로 의존성을 설치해 주세요.")
		os.Exit(1)
	}

	unitext.Logger = log.New(os.Stderr, "UNITEXT : ", log.Lshortfile)
	unitext.CacheDir = filepath.Join(os.TempDir(), "icon-gen-font-cache")

	if err := generateIcons(outputDir, iconSizes, os.Stdout); err != nil {
		ErrorLogger.Fatal(err)
	}
}

// generateIcons renders every size in order and writes each one to
// outDir/icon{size}.png, printing one confirmation line per file and a
// final summary line to out.
func generateIcons(outDir string, sizes []int, out io.Writer) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create %v : %w", outDir, err)
	}

	for _, size := range sizes {
		img := RenderIcon(size)

		path := filepath.Join(outDir, fmt.Sprintf("icon%d.png", size))
		if err := savePng(path, img); err != nil {
			return err
		}

		fmt.Fprintf(out, "✓ %s 생성 완료\n", path)
	}

	fmt.Fprintf(out, "모든 아이콘이 생성되었습니다! 위치: %s/\n", outDir)

	return nil
}

func savePng(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %v : %w", path, err)
	}
	defer file.Close()

	bufWriter := bufio.NewWriter(file)
	if err := png.Encode(bufWriter, img); err != nil {
		return fmt.Errorf("failed to encode %v : %w", path, err)
	}

	return bufWriter.Flush()
}
