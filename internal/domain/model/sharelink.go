package model

import "strings"

const driveFileMarker = "/file/d/"

// NormalizeShareLink collapses the varying Google Drive share-link formats
// into the canonical "https://drive.google.com/file/d/<id>/view?usp=sharing"
// form. Links that carry no recognizable file id are returned unchanged. The
// function is pure; resolving the link into bytes is the attachment
// resolver's job.
func NormalizeShareLink(link string) string {
	if !strings.Contains(link, "drive.google.com"+driveFileMarker) {
		return link
	}
	id := ShareLinkFileID(link)
	if id == "" {
		return link
	}
	return "https://drive.google.com/file/d/" + id + "/view?usp=sharing"
}

// ShareLinkFileID extracts the Drive file id from a share link. Both the
// "/file/d/<id>/..." path form and the "?id=<id>" query form are recognized;
// "" is returned when neither matches.
func ShareLinkFileID(link string) string {
	if i := strings.Index(link, driveFileMarker); i >= 0 {
		rest := link[i+len(driveFileMarker):]
		if j := strings.IndexByte(rest, '/'); j > 0 {
			return rest[:j]
		}
		return ""
	}
	if i := strings.Index(link, "id="); i >= 0 {
		id := link[i+len("id="):]
		if j := strings.IndexAny(id, "&#"); j >= 0 {
			id = id[:j]
		}
		return id
	}
	return ""
}
