// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vault

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/poiesic/notefind/core"
)

var validBlockIDRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// BlockIDs returns every block id used anywhere in the vault.
func (v *Vault) BlockIDs(ctx context.Context) (map[string]struct{}, error) {
	paths, err := v.notePaths(ctx)
	if err != nil {
		return nil, err
	}

	found := make([][]string, len(paths))
	scanErr := v.forEach(ctx, paths, func(i int, rel string) error {
		data, err := os.ReadFile(v.absPath(rel))
		if err != nil {
			return err
		}
		found[i] = scanBlockIDs(data)
		return nil
	})

	ids := make(map[string]struct{})
	for _, fileIDs := range found {
		for _, id := range fileIDs {
			ids[id] = struct{}{}
		}
	}
	return ids, scanErr
}

func scanBlockIDs(data []byte) []string {
	var ids []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		if m := blockIDRe.FindSubmatch(line); m != nil {
			ids = append(ids, string(m[1]))
		}
	}
	return ids
}

// AppendBlockID appends " ^id" to the given 1-based line of doc.
func (v *Vault) AppendBlockID(ctx context.Context, doc core.Document, line int, id string) error {
	if !validBlockIDRe.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidBlockID, id)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := v.readNote(doc)
	if err != nil {
		return fmt.Errorf("reading %s: %w", doc.Path, err)
	}

	updated, err := appendBlockID(data, line, id)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Path, err)
	}

	target := v.absPath(doc.Path)
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("writing %s: %w", doc.Path, err)
	}
	if err := os.WriteFile(target, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", doc.Path, err)
	}

	v.logger.Debug("appended block id", "path", doc.Path, "line", line, "id", id)
	return nil
}

func appendBlockID(data []byte, line int, id string) ([]byte, error) {
	lines := bytes.Split(data, []byte("\n"))
	count := len(lines)
	if count > 0 && len(lines[count-1]) == 0 {
		// trailing newline
		count--
	}
	if line < 1 || line > count {
		return nil, fmt.Errorf("%w: line %d of %d", ErrLineOutOfRange, line, count)
	}

	target := lines[line-1]
	cr := bytes.HasSuffix(target, []byte("\r"))
	target = bytes.TrimRight(target, " \t\r")

	var b bytes.Buffer
	b.Write(target)
	b.WriteString(" ^")
	b.WriteString(id)
	if cr {
		b.WriteByte('\r')
	}
	lines[line-1] = b.Bytes()

	return bytes.Join(lines, []byte("\n")), nil
}
