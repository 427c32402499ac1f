// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package factory selects a resourcedb.Store implementation from
// configuration.
package factory

import (
	"github.com/czcorpus/soundshift/resourcedb"
	"github.com/czcorpus/soundshift/resourcedb/mysql"
	"github.com/czcorpus/soundshift/resourcedb/sqlite"
)

// New builds the Store named by conf.Type, already initialized. An
// unconfigured Conf (Type == "") yields a resourcedb.NullStore so
// callers never need a nil check.
func New(conf resourcedb.Conf) (resourcedb.Store, error) {
	var store resourcedb.Store
	switch conf.Type {
	case "":
		return resourcedb.NullStore{}, nil
	case "sqlite":
		s, err := sqlite.New(conf.Path, conf.TablePrefix)
		if err != nil {
			return nil, err
		}
		store = s
	case "mysql":
		s, err := mysql.New(conf.Host, conf.User, conf.Password, conf.DBName, conf.TablePrefix)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		return nil, &resourcedb.ErrNotConfigured{Type: conf.Type}
	}
	if err := store.Initialize(); err != nil {
		return nil, err
	}
	return store, nil
}
