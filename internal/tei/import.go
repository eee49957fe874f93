package tei

import (
	"strings"

	"github.com/aidanlsb/scribe/internal/model"
)

// Import reads a TEI document produced by Serialize back into a State.
//
// Every metadata field is looked up on its own and falls back to the default
// record when its element or attribute is missing. Entries are recovered from
// the body; when none are found the result holds a single default entry.
// Only a document that is not well-formed XML is rejected, with ErrMalformed.
func Import(text string) (model.State, error) {
	doc, err := parse(text)
	if err != nil {
		return model.State{}, err
	}
	s := model.State{
		Metadata: readMetadata(doc.descendant("teiHeader")),
		Entries:  readBody(doc.descendant("body")),
	}
	return s.Normalize(), nil
}

func readMetadata(header *node) model.Metadata {
	def := model.DefaultMetadata()
	file := header.child("fileDesc")
	title := file.child("titleStmt")
	resp := file.path("editionStmt", "respStmt")
	pub := file.child("publicationStmt")
	ms := file.path("sourceDesc", "msDesc")
	ident := ms.child("msIdentifier")
	contents := ms.child("msContents")
	phys := ms.child("physDesc")
	object := phys.child("objectDesc")
	origin := ms.path("history", "origin")
	enc := header.child("encodingDesc")

	return model.Metadata{
		Title:           title.childAttr("title", "type", "main").textOr(def.Title),
		Subtitle:        title.childAttr("title", "type", "sub").textOr(def.Subtitle),
		Author:          title.child("author").textOr(def.Author),
		Editor:          resp.child("persName").textOr(def.Editor),
		Affiliation:     resp.child("orgName").textOr(def.Affiliation),
		Date:            pub.child("date").textOr(def.Date),
		Publisher:       pub.child("publisher").textOr(def.Publisher),
		Settlement:      ident.child("settlement").textOr(def.Settlement),
		Institution:     ident.child("institution").textOr(def.Institution),
		Repository:      ident.child("repository").textOr(def.Repository),
		Shelfmark:       ident.childAttr("idno", "type", "shelfmark").textOr(def.Shelfmark),
		Collection:      ident.child("collection").textOr(def.Collection),
		MsContentsTitle: contents.path("msItem", "title").textOr(def.MsContentsTitle),
		MsContentsNote:  contents.path("msItem", "note").textOr(def.MsContentsNote),
		Summary:         paragraphsOr(contents.child("summary"), def.Summary),
		MainLang:        contents.child("textLang").attrOr("mainLang", def.MainLang),
		OtherLangs:      contents.child("textLang").attrOr("otherLangs", def.OtherLangs),
		PhysForm:        object.attrOr("form", def.PhysForm),
		PhysExtent:      object.path("supportDesc", "extent").textOr(def.PhysExtent),
		PhysLayout:      object.path("layoutDesc", "layout").textOr(def.PhysLayout),
		HandNote:        phys.path("handDesc", "handNote").textOr(def.HandNote),
		OrigDate:        origin.child("origDate").textOr(def.OrigDate),
		OrigPlace:       origin.child("origPlace").textOr(def.OrigPlace),
		ProjectDesc:     paragraphsOr(enc.child("projectDesc"), def.ProjectDesc),
		Genre:           header.path("profileDesc", "textClass", "keywords").childAttr("term", "type", "genre").textOr(def.Genre),
	}
}

// paragraphsOr joins the <p> children of n. An element without paragraphs
// contributes its own text.
func paragraphsOr(n *node, fallback string) string {
	if n == nil {
		return fallback
	}
	paras := n.childrenNamed("p")
	if len(paras) == 0 {
		return n.innerText()
	}
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = p.innerText()
	}
	return strings.Join(out, ParagraphSeparator)
}

// bodyReader tracks the current page while walking the body.
type bodyReader struct {
	page    string
	entries []model.Entry
}

func readBody(body *node) []model.Entry {
	r := &bodyReader{page: model.DefaultPage}
	for _, c := range body.childrenOrNil() {
		if c.name == "div" {
			layout := model.Layout(c.attrOr("n", string(model.LayoutColumn1)))
			if !layout.Valid() || layout == model.LayoutAcross {
				layout = model.LayoutColumn1
			}
			for _, cc := range c.children {
				r.visit(cc, layout)
			}
			continue
		}
		r.visit(c, model.LayoutAcross)
	}
	return r.entries
}

func (r *bodyReader) visit(n *node, layout model.Layout) {
	switch n.name {
	case "pb":
		r.page = n.attrOr("n", r.page)
	case "entry":
		e := readEntry(n)
		e.Page = r.page
		e.Column = layout
		r.entries = append(r.entries, e)
	}
}

func (n *node) childrenOrNil() []*node {
	if n == nil {
		return nil
	}
	return n.children
}

func readEntry(n *node) model.Entry {
	var e model.Entry

	lemma := n.childAttr("form", "type", "lemma")
	orig := lemma.childAttr("orth", "type", "original")
	normalized := lemma.childAttr("orth", "type", "normalized")
	e.MazOrig, e.UncertainMazOrig = orig.innerText(), isUncertain(orig)
	e.MazNorm, e.UncertainMazNorm = normalized.innerText(), isUncertain(normalized)
	e.IPA = lemma.childAttr("pron", "notation", "ipa").innerText()

	if v := n.childAttr("form", "type", "variant"); v != nil {
		e.Variant = &model.Variant{
			Label: v.child("lbl").innerText(),
			Orig:  v.childAttr("orth", "type", "original").innerText(),
			Norm:  v.childAttr("orth", "type", "normalized").innerText(),
		}
	}

	sense := n.child("sense")
	spaOrig := sense.childAttr("def", "type", "original")
	spaNorm := sense.childAttr("def", "type", "normalized")
	gloss := sense.child("gloss")
	e.SpaOrig, e.UncertainSpaOrig = spaOrig.innerText(), isUncertain(spaOrig)
	e.SpaNorm, e.UncertainSpaNorm = spaNorm.innerText(), isUncertain(spaNorm)
	e.EngGloss, e.UncertainEng = gloss.innerText(), isUncertain(gloss)

	for _, xr := range n.childrenNamed("xr") {
		switch t, _ := xr.attr("type"); t {
		case "kirk":
			e.KirkRef = xr.innerText()
		case "kirkSet":
			e.KirkSets = append(e.KirkSets, readKirkSet(xr))
		}
	}

	e.Notes = []model.Note{}
	for _, nn := range n.childrenNamed("note") {
		t := model.NoteType(nn.attrOr("type", string(model.NoteEditorial)))
		if !t.Valid() {
			t = model.NoteEditorial
		}
		e.Notes = append(e.Notes, model.Note{
			Type: t,
			Resp: strings.TrimPrefix(nn.attrOr("resp", ""), "#"),
			Text: nn.innerText(),
		})
	}

	e.Line = n.child("lb").attrOr("n", "")
	return e
}

func readKirkSet(xr *node) model.KirkSet {
	ks := model.KirkSet{
		Number:     xr.attrOr("n", ""),
		SourcePage: xr.childAttr("ref", "type", "page").innerText(),
		Headword:   xr.childAttr("term", "type", "proto").innerText(),
	}
	for _, t := range xr.childrenNamed("term") {
		if typ, _ := t.attr("type"); typ != "daughter" {
			continue
		}
		ana, _ := t.attr("ana")
		ks.Daughters = append(ks.Daughters, model.Daughter{
			Text:     t.innerText(),
			Confirms: ana == ConfirmsRef,
		})
	}
	return ks
}

func isUncertain(n *node) bool {
	v, _ := n.attr("cert")
	return v == CertLow
}
