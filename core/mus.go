// Copyright 2025 Veritell Systems
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


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types persisted by the catalog store.
// Timestamps are stored as Unix microseconds in UTC.

// IDMUS serializes IDs as varint-encoded uint64 values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, buf []byte) int {
	return varint.Uint64.Marshal(uint64(id), buf)
}

func (idMUS) Unmarshal(buf []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(buf)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(buf []byte) (int, error) {
	return varint.Uint64.Skip(buf)
}

// CatalogEntityMUS serializes CatalogEntity values field by field.
var CatalogEntityMUS = catalogEntityMUS{}

type catalogEntityMUS struct{}

func (catalogEntityMUS) Marshal(e CatalogEntity, buf []byte) (n int) {
	n = IDMUS.Marshal(e.Id, buf)
	n += ord.String.Marshal(e.Name, buf[n:])
	n += ord.String.Marshal(e.AltName, buf[n:])
	n += ord.String.Marshal(e.Category, buf[n:])
	n += ord.String.Marshal(e.City, buf[n:])
	n += ord.String.Marshal(e.State, buf[n:])
	n += varint.Int64.Marshal(e.InsertedAt.UnixMicro(), buf[n:])
	n += varint.Int64.Marshal(e.UpdatedAt.UnixMicro(), buf[n:])
	return n
}

func (catalogEntityMUS) Unmarshal(buf []byte) (e CatalogEntity, n int, err error) {
	var n1 int
	if e.Id, n, err = IDMUS.Unmarshal(buf); err != nil {
		return
	}
	if e.Name, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.AltName, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Category, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.City, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.State, n1, err = ord.String.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	e.InsertedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(buf[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	e.UpdatedAt = time.UnixMicro(micros).UTC()
	return e, n, nil
}

func (catalogEntityMUS) Size(e CatalogEntity) (size int) {
	size = IDMUS.Size(e.Id)
	size += ord.String.Size(e.Name)
	size += ord.String.Size(e.AltName)
	size += ord.String.Size(e.Category)
	size += ord.String.Size(e.City)
	size += ord.String.Size(e.State)
	size += varint.Int64.Size(e.InsertedAt.UnixMicro())
	size += varint.Int64.Size(e.UpdatedAt.UnixMicro())
	return size
}

func (catalogEntityMUS) Skip(buf []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(buf); err != nil {
		return
	}
	for range 5 {
		if n1, err = ord.String.Skip(buf[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	for range 2 {
		if n1, err = varint.Int64.Skip(buf[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}
