package render

import (
	"fmt"
	"html/template"
	"io"
)

var listTemplate = template.Must(template.New("list").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<ul id="movieLists">
{{- range .Items}}
  <li class="movie-list-item" data-imdb-id="{{.Entry.IMDbID}}">
    <img src="{{.Poster}}" alt="{{.Entry.Title}}" class="movie-poster">
    <div class="movie-styling">
      <h3>{{.Entry.Title}} ({{.Entry.Year}})</h3>
      <p><strong>Director:</strong> {{.Entry.Director}}</p>
{{- if .Editing}}
      <textarea id="editReview" placeholder="Write your review here">{{.DraftReview}}</textarea>
      <input type="number" id="editRating" min="1" max="10" value="{{.DraftRating}}">
      <button class="save-btn" data-index="{{.Index}}">Save</button>
      <button class="cancel-btn" data-index="{{.Index}}">Cancel</button>
{{- else}}
      <p><strong>Review:</strong> <span class="review-text">{{.Entry.Review}}</span></p>
      <p><strong>Rating:</strong> <span class="rating-text">{{.Entry.Rating}}</span>/10</p>
      <button class="edit-btn" data-index="{{.Index}}">Edit</button>
      <button class="delete-btn" data-index="{{.Index}}">Delete</button>
{{- end}}
    </div>
  </li>
{{- end}}
</ul>
</body>
</html>
`))

// HTML writes items as a standalone HTML document using the same markup as
// the browser page the list is shared with. All values are escaped by
// html/template.
func HTML(w io.Writer, items []Item) error {
	data := struct {
		Title string
		Items []Item
	}{
		Title: "My Movie Scores",
		Items: items,
	}
	if err := listTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
