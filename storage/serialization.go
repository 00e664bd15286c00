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

package storage

import (
	"errors"
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/varint"
)

// MarshalStamp serializes a millisecond timestamp to bytes.
func MarshalStamp(stamp int64) []byte {
	buf := make([]byte, varint.Int64.Size(stamp))
	varint.Int64.Marshal(stamp, buf)
	return buf
}

// UnmarshalStamp deserializes a millisecond timestamp from bytes.
// The data must hold exactly one encoded stamp.
func UnmarshalStamp(data []byte) (int64, error) {
	stamp, n, err := varint.Int64.Unmarshal(data)
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, ErrTruncatedData)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return 0, fmt.Errorf("%w: %d trailing bytes after stamp", ErrSerializationFailed, len(data)-n)
	}
	return stamp, nil
}
