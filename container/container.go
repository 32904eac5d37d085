package container

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/ofd/model"
)

// Entry-point errors.
var (
	ErrNoDescriptor      = errors.New("ofd: missing OFD.xml entry")
	ErrInvalidDescriptor = errors.New("ofd: invalid OFD.xml")
	ErrNoDocRoot         = errors.New("ofd: no DocRoot found in OFD.xml")
)

// ofdXML represents the structure of the OFD.xml entry point.
type ofdXML struct {
	XMLName xml.Name  `xml:"OFD"`
	Version string    `xml:"Version,attr"`
	DocType string    `xml:"DocType,attr"`
	DocBody []docBody `xml:"DocBody"`
}

type docBody struct {
	DocInfo docInfoXML `xml:"DocInfo"`
	DocRoot string     `xml:"DocRoot"`
}

type docInfoXML struct {
	DocID          string `xml:"DocID"`
	Title          string `xml:"Title"`
	Author         string `xml:"Author"`
	Subject        string `xml:"Subject"`
	Abstract       string `xml:"Abstract"`
	CreationDate   string `xml:"CreationDate"`
	ModDate        string `xml:"ModDate"`
	Creator        string `xml:"Creator"`
	CreatorVersion string `xml:"CreatorVersion"`
}

// decodeXML decodes descriptor XML with charset support, so GBK or
// GB18030 encoded descriptors parse the same as UTF-8 ones.
func decodeXML(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	return dec.Decode(v)
}

// parseEntryPoint parses OFD.xml and returns the first document's
// root descriptor path and its metadata.
func parseEntryPoint(zr *zip.Reader) (string, model.DocInfo, error) {
	var entryFile *zip.File
	for _, f := range zr.File {
		if f.Name == "OFD.xml" {
			entryFile = f
			break
		}
	}

	if entryFile == nil {
		return "", model.DocInfo{}, ErrNoDescriptor
	}

	rc, err := entryFile.Open()
	if err != nil {
		return "", model.DocInfo{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", model.DocInfo{}, err
	}

	var entry ofdXML
	if err := decodeXML(data, &entry); err != nil {
		return "", model.DocInfo{}, ErrInvalidDescriptor
	}

	for _, body := range entry.DocBody {
		if body.DocRoot != "" {
			return body.DocRoot, body.DocInfo.toModel(), nil
		}
	}

	return "", model.DocInfo{}, ErrNoDocRoot
}

func (di docInfoXML) toModel() model.DocInfo {
	return model.DocInfo{
		DocID:          di.DocID,
		Title:          di.Title,
		Author:         di.Author,
		Subject:        di.Subject,
		Abstract:       di.Abstract,
		CreationDate:   di.CreationDate,
		ModDate:        di.ModDate,
		Creator:        di.Creator,
		CreatorVersion: di.CreatorVersion,
	}
}
