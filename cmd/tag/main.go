// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The tag tool reads and writes metadata tags on Ogg/Vorbis, Ogg/Opus, and
MP3 files.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dhowden/oggid3"
)

type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var sets setFlags

var usage = func() {
	fmt.Fprintf(os.Stderr, "usage: %s [-set key=value ...] filename\n", os.Args[0])
	flag.PrintDefaults()
}

func init() {
	flag.Var(&sets, "set", "set a tag field, as key=value; may be repeated")
	flag.Usage = usage
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if len(sets) > 0 {
		if err := writeTags(path, sets); err != nil {
			fmt.Fprintf(os.Stderr, "error writing tags: %v\n", err)
			os.Exit(1)
		}
	}

	if err := printTags(path); err != nil {
		fmt.Fprintf(os.Stderr, "error reading tags: %v\n", err)
		os.Exit(1)
	}
}

func writeTags(path string, sets []string) error {
	w, err := tag.NewWriter(path)
	if err != nil {
		return err
	}

	r, err := tag.NewReader(path)
	if err != nil {
		return err
	}
	tags, err := r.GetTags()
	if err != nil {
		return err
	}

	for _, kv := range sets {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid -set value %q, want key=value", kv)
		}
		tags.Set(parts[0], parts[1])
	}

	return w.WriteTags(tags)
}

func printTags(path string) error {
	r, err := tag.NewReader(path)
	if err != nil {
		return err
	}
	tags, err := r.GetTags()
	if err != nil {
		return err
	}

	keys := tags.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%v: %v\n", k, tags.GetString(k))
	}
	return nil
}
