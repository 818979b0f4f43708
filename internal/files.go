// vgunfold: a phase-unfolding toolchain for variation graphs.
// Copyright (c) 2024 vgunfold contributors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://www.gnu.org/licenses/>.

package internal

import (
	"os"
	"path/filepath"
)

// FileOpen opens filename for reading.
func FileOpen(filename string) (*os.File, error) {
	return os.Open(filename)
}

// FileCreate creates or truncates filename for writing.
func FileCreate(filename string) (*os.File, error) {
	return os.Create(filename)
}

// Close closes f and returns the close error, logging nothing itself.
func Close(f *os.File) error {
	return f.Close()
}

// Write writes b to f and returns the number of bytes written.
func Write(f *os.File, b []byte) (int, error) {
	return f.Write(b)
}

// WriteString writes s to f and returns the number of bytes written.
func WriteString(f *os.File, s string) (int, error) {
	return f.WriteString(s)
}

func Directory(file string) (files []string, err error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(file)}, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := f.Close()
		if err == nil {
			err = nerr
		}
	}()
	return f.Readdirnames(0)
}

func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}
