package postgres

import (
	"database/sql"
	"encoding/json"
	"strings"

	"linkmono/internal/model"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into a LIKE pattern matching q anywhere, with wildcards in q taken literally.
// Queries pair it with ESCAPE '\'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// direction maps a sort order onto a SQL direction keyword. Only constant strings are returned.
func direction(s model.SortOrder) string {
	if s == model.SortOld {
		return "ASC"
	}
	return "DESC"
}

// articleColumns selects an article, its author and its tag names as a JSON array.
// Callers alias articles as a and users as u.
const articleColumns = `a.id, a.title, a.visibility, a.created_at, a.updated_at,
		u.name, u.display_name, u.image,
		COALESCE((
			SELECT json_agg(t.name ORDER BY t.name)
			FROM article_tags atg JOIN tags t ON t.id = atg.tag_id
			WHERE atg.article_id = a.id
		), '[]'::json)`

// workColumns selects a work and its author. Callers alias works as w and users as u.
const workColumns = `w.id, w.title, w.thumbnail, w.visibility, w.created_at,
		u.name, u.display_name, u.image`

// tagColumns selects a tag with the number of published articles carrying it. Callers alias tags as t.
const tagColumns = `t.id, t.name,
		(SELECT COUNT(*) FROM article_tags atg JOIN articles a ON a.id = atg.article_id
		 WHERE atg.tag_id = t.id AND a.visibility)`

func scanArticles(rows *sql.Rows) ([]model.Article, error) {
	defer rows.Close()

	items := make([]model.Article, 0)
	for rows.Next() {
		var (
			a    model.Article
			tags []byte
		)
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Visibility,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.Author.Name,
			&a.Author.DisplayName,
			&a.Author.Image,
			&tags,
		); err != nil {
			return nil, err
		}
		a.Tags = make([]string, 0)
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &a.Tags); err != nil {
				return nil, err
			}
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanWorks(rows *sql.Rows) ([]model.Work, error) {
	defer rows.Close()

	items := make([]model.Work, 0)
	for rows.Next() {
		var w model.Work
		if err := rows.Scan(
			&w.ID,
			&w.Title,
			&w.Thumbnail,
			&w.Visibility,
			&w.CreatedAt,
			&w.Author.Name,
			&w.Author.DisplayName,
			&w.Author.Image,
		); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	defer rows.Close()

	items := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.ArticleCount); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
