package session

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Ahmed-Fekry07/YOLO-Annotator/domain/annotation"
)

// ReadClassFile parses a class list file. Each non-empty line is either a
// bare name, whose id is the line's zero-based position, or the explicit
// "[<id>] <name>" form. The two forms may be mixed.
func ReadClassFile(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	classes := make(map[int]string)
	scanner := bufio.NewScanner(f)
	pos := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, name, err := parseClassLine(line, pos)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		classes[id] = name
		pos++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

func parseClassLine(line string, pos int) (int, string, error) {
	if strings.HasPrefix(line, "[") {
		end := strings.Index(line, "]")
		if end < 0 {
			return 0, "", fmt.Errorf("class line %q: unterminated id bracket", line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(line[1:end]))
		if err != nil {
			return 0, "", fmt.Errorf("class line %q: %w", line, err)
		}
		name := strings.TrimSpace(line[end+1:])
		if name == "" {
			return 0, "", fmt.Errorf("class line %q: empty name", line)
		}
		return id, name, nil
	}
	return pos, line, nil
}

// WriteClassFile writes the registry's classes in the explicit
// "[<id>] <name>" form, one per line in ascending id order.
func WriteClassFile(path string, reg *annotation.ClassRegistry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, id := range reg.IDs() {
		name, _ := reg.Name(id)
		fmt.Fprintf(w, "[%d] %s\n", id, name)
	}
	return w.Flush()
}
