// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

// Injected reports whether the search wrapper is present in the document.
func (d *Document) Injected() bool {
	return d.doc.Find("#"+WrapperID).Length() > 0
}

// InjectWrapper inserts the search form and the empty results section as
// the first child of <body>. It is idempotent: when the wrapper already
// exists nothing is inserted and false is returned.
//
// The inserted elements are present as soon as InjectWrapper returns, so
// callers may wire handlers immediately.
func (d *Document) InjectWrapper() (bool, error) {
	if d.Injected() {
		return false, nil
	}

	body := d.doc.Find("body").First()
	if body.Length() == 0 {
		return false, ErrNoBody
	}

	markup, err := execute("wrapper", struct{ Placeholder string }{Placeholder})
	if err != nil {
		return false, err
	}
	body.PrependHtml(markup)
	return true, nil
}
