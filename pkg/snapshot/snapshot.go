package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Dir is where snapshot files are read from and written to, relative to the package under test
const Dir = "testdata"

var (
	mu        sync.Mutex
	callCount = make(map[string]int)
)

// ValidateSnapshot compares the indented JSON encoding of obj to the stored snapshot
// The snapshot is named after the test, and numbered when a test validates more than once
// If no snapshot exists yet, one is written and the check passes
func ValidateSnapshot(t *testing.T, obj interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	filename := filepath.Join(Dir, nextName(t.Name()))

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if err := create(filename, objJSON); err != nil {
				t.Fatalf("could not write snapshot: %v", err)
			}

			return
		}

		t.Fatalf("could not read snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextName(testName string) string {
	mu.Lock()
	defer mu.Unlock()

	name := strings.NewReplacer("/", "-", " ", "_").Replace(testName)
	call := callCount[name]
	callCount[name] = call + 1

	return fmt.Sprintf("%s-%d.json", name, call)
}

func create(filename string, objJSON []byte) error {
	logrus.WithField("filename", filename).Info("writing snapshot file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	return os.WriteFile(filename, append(objJSON, '\n'), 0644)
}
