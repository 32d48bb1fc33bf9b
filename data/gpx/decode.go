// Package gpx decodes GPX 1.0/1.1 documents into tracks. Every track segment and
// every route becomes its own geotrack.Track.
package gpx

import (
	"encoding/xml"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bgraf/trackmix/data/xmltree"
	"github.com/bgraf/trackmix/geotrack"
	"github.com/bgraf/trackmix/option"
)

const (
	formatName = "gpx"
	rootName   = "gpx"

	linkTypeTrackOnWeb     = "trackOnWeb"
	linkTypeElevationChart = "elevationChartUrlTab"
)

// Decode reads a GPX document from r. Tracks are produced lazily while the
// document is read, one per <trkseg> and one per <rte>.
func Decode(r io.Reader, source string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		sc := xmltree.NewScanner(r)
		root, err := sc.Root()
		if err != nil {
			yield(geotrack.Track{}, &geotrack.ParseError{Format: formatName, Source: source, Err: err})
			return
		}

		if root != rootName {
			yield(geotrack.Track{}, &geotrack.FormatError{
				Format: formatName,
				Source: source,
				Reason: "root element is <" + root + ">",
			})
			return
		}

		DecodeScanner(sc, source)(yield)
	}
}

type trackMeta struct {
	name        string
	src         string
	desc        string
	externalURL string
	imageURL    string
}

// DecodeScanner continues decoding a scanner already positioned at a <gpx> root.
func DecodeScanner(sc *xmltree.Scanner, source string) iter.Seq2[geotrack.Track, error] {
	return func(yield func(geotrack.Track, error) bool) {
		var (
			meta  trackMeta
			found bool
		)

		match := func(path []string, start xml.StartElement) bool {
			name := start.Name.Local
			if len(path) == 1 {
				switch name {
				case "trk":
					found = true
					meta = trackMeta{name: geotrack.DefaultName}
					return false
				case "rte":
					found = true
					return true
				}
				return false
			}

			return len(path) == 2 && path[1] == "trk"
		}

		for {
			node, err := sc.Next(match)
			if err == io.EOF {
				break
			}
			if err != nil {
				yield(geotrack.Track{}, &geotrack.ParseError{Format: formatName, Source: source, Err: err})
				return
			}

			switch node.Name {
			case "rte":
				if !yield(decodeRoute(node), nil) {
					return
				}
			case "name":
				meta.name = node.Text
			case "src":
				meta.src = node.Text
			case "desc":
				meta.desc = node.Text
			case "link":
				applyLink(&meta, node)
			case "trkseg":
				if !yield(decodeSegment(node, meta), nil) {
					return
				}
			}
		}

		if !found {
			log.Printf("gpx: '%s' has neither tracks nor routes: %v", source, sc.RootAttrs())
			yield(geotrack.Track{}, &geotrack.FormatError{
				Format: formatName,
				Source: source,
				Reason: "neither tracks nor routes",
			})
		}
	}
}

func applyLink(meta *trackMeta, link *xmltree.Node) {
	href, ok := link.Attr("href")
	if !ok {
		return
	}

	linkType, ok := link.ChildText("type")
	if !ok {
		linkType, _ = link.Attr("type")
	}

	switch {
	case strings.Contains(linkType, linkTypeTrackOnWeb):
		meta.externalURL = href
	case strings.Contains(linkType, linkTypeElevationChart):
		meta.imageURL = href
	}
}

func decodeSegment(seg *xmltree.Node, meta trackMeta) geotrack.Track {
	track := geotrack.Track{
		Name:        meta.name,
		Src:         meta.src,
		Description: meta.desc,
		ExternalURL: meta.externalURL,
		ImageURL:    meta.imageURL,
	}
	geotrack.ApplyNameFallback(&track)

	for _, trkpt := range seg.All("trkpt") {
		p, ok := decodePosition(trkpt)
		if !ok {
			continue
		}

		if ele, ok := trkpt.ChildText("ele"); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(ele), 64); err == nil {
				p.Elevation = option.Some(v)
			}
		}

		if ts, ok := trkpt.ChildText("time"); ok {
			if t, ok := geotrack.ParseTime(ts, time.UTC); ok {
				p.Time = option.Some(t.UTC())
			}
		}

		track.Points = append(track.Points, p)
	}

	geotrack.Normalize(&track)

	return track
}

func decodeRoute(rte *xmltree.Node) geotrack.Track {
	track := geotrack.Track{Name: geotrack.DefaultName}
	if name, ok := rte.ChildText("name"); ok {
		track.Name = name
	}

	for _, rtept := range rte.All("rtept") {
		if ts, ok := rtept.ChildText("time"); ok {
			if t, ok := geotrack.ParseTime(ts, time.UTC); ok {
				track.Timestamp = option.Some(t.UTC())
			}
		}

		if p, ok := decodePosition(rtept); ok {
			track.Points = append(track.Points, p)
		}
	}

	return track
}

func decodePosition(n *xmltree.Node) (p geotrack.Point, ok bool) {
	latStr, okLat := n.Attr("lat")
	lonStr, okLon := n.Attr("lon")
	if !okLat || !okLon {
		return
	}

	var err error
	if p.Lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
		return
	}
	if p.Lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64); err != nil {
		return
	}

	return p, true
}
