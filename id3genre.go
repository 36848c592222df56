// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tag

import (
	"strconv"
	"strings"
)

// id3v1Genres is the Winamp-extended ID3v1 genre table: the 80 genres
// defined by the original ID3v1 spec (indices 0-79) plus Winamp's
// extensions (indices 80-147), used both for the single-byte ID3v1 genre
// field and for ID3v2's "(n)" parenthesized genre-code references.
//
// Grounded on other_examples' SpotiFLAC-Android audio_metadata.go id3v1Genres
// table (confirmed 148 entries), cross-checked for the first-80 ordering
// against pytag/formats.py's GENRES list.
var id3v1Genres = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel", "Noise",
	"AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic", "Darkwave",
	"Techno-Industrial", "Electronic", "Pop-Folk", "Eurodance", "Dream",
	"Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40", "Christian Rap",
	"Pop/Funk", "Jungle", "Native American", "Cabaret", "New Wave",
	"Psychedelic", "Rave", "Showtunes", "Trailer", "Lo-Fi", "Tribal",
	"Acid Punk", "Acid Jazz", "Polka", "Retro", "Musical", "Rock & Roll",
	"Hard Rock", "Folk", "Folk-Rock", "National Folk", "Swing", "Fast Fusion",
	"Bebop", "Latin", "Revival", "Celtic", "Bluegrass", "Avantgarde",
	"Gothic Rock", "Progressive Rock", "Psychedelic Rock", "Symphonic Rock",
	"Slow Rock", "Big Band", "Chorus", "Easy Listening", "Acoustic", "Humour",
	"Speech", "Chanson", "Opera", "Chamber Music", "Sonata", "Symphony",
	"Booty Bass", "Primus", "Porn Groove", "Satire", "Slow Jam", "Club",
	"Tango", "Samba", "Folklore", "Ballad", "Power Ballad", "Rhythmic Soul",
	"Freestyle", "Duet", "Punk Rock", "Drum Solo", "A Cappella", "Euro-House",
	"Dance Hall", "Goa", "Drum & Bass", "Club-House", "Hardcore", "Terror",
	"Indie", "BritPop", "Afro-Punk", "Polsk Punk", "Beat",
	"Christian Gangsta Rap", "Heavy Metal", "Black Metal", "Crossover",
	"Contemporary Christian", "Christian Rock", "Merengue", "Salsa",
	"Thrash Metal", "Anime", "JPop", "Synthpop",
}

// genreByCode returns the genre name for a Winamp/ID3v1 genre code, and
// false if code is out of range.
func genreByCode(code int) (string, bool) {
	if code < 0 || code >= len(id3v1Genres) {
		return "", false
	}
	return id3v1Genres[code], true
}

// decodeID3v2Genre expands an ID3v2 TCON/TCO frame value consisting of one
// or more parenthesized numeric genre codes, such as "(17)" or "(4)(15)",
// into the referenced genre name(s): a bare string for a single code, or an
// ordered []string for more than one. Any failure along the way (a part that
// isn't a valid integer, or a code out of range) abandons the expansion
// entirely and returns raw unchanged, including codes like "(RX)" or "(CR)"
// that aren't numeric at all.
//
// Grounded on pytag/formats.py's Mp3._decode_genre: split on ")(", strip
// each part's leading/trailing "(" and ")" runes, parse as int, look up.
func decodeID3v2Genre(raw string) any {
	raw = strings.TrimRight(raw, "\x00")
	if raw == "" || raw[0] != '(' {
		return raw
	}

	var names []string
	for _, part := range strings.Split(raw, ")(") {
		code := strings.Trim(part, "()")
		n, err := strconv.Atoi(code)
		if err != nil {
			return raw
		}
		name, ok := genreByCode(n)
		if !ok {
			return raw
		}
		names = append(names, name)
	}

	if len(names) == 1 {
		return names[0]
	}
	return names
}
