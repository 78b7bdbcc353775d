// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"

	"github.com/olegiv/oblog/internal/trigram"
)

// similarity(a, b) is registered for every SQLite connection so search can
// filter and order by trigram similarity inside the query, as pg_trgm does.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("similarity", 2, similarityFunc)
}

func similarityFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, err := textArg(args[0])
	if err != nil {
		return nil, err
	}
	b, err := textArg(args[1])
	if err != nil {
		return nil, err
	}
	return trigram.Similarity(a, b), nil
}

func textArg(v driver.Value) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("similarity: unsupported argument type %T", v)
	}
}
