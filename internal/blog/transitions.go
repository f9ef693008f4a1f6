package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// ApproveSuggestion approves a pending suggestion, creating a post from its
// content. If publish is true the post is published immediately and the
// suggestion moves to published; otherwise the post is a draft and the
// suggestion moves to approved.
//
// Post creation and the status transition run in one transaction, and the
// status update is guarded by a compare-and-set on the pending state so
// concurrent moderation calls on the same id cannot double-process it.
func (s *Store) ApproveSuggestion(ctx context.Context, id int64, notes string, publish bool, authorID int64) (*Suggestion, *Post, error) {
	target := StatusApproved
	if publish {
		target = StatusPublished
	}
	return s.transition(ctx, id, notes, target, authorID)
}

// PublishSuggestion publishes a pending suggestion directly, creating a
// published post in the same transaction.
func (s *Store) PublishSuggestion(ctx context.Context, id int64, authorID int64) (*Suggestion, *Post, error) {
	return s.transition(ctx, id, "", StatusPublished, authorID)
}

func (s *Store) transition(ctx context.Context, id int64, notes, target string, authorID int64) (*Suggestion, *Post, error) {
	sug, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sug.Status != StatusPending {
		return nil, nil, fmt.Errorf("suggestion %d is %s: %w", id, sug.Status, ErrStateConflict)
	}

	now := time.Now().UTC()
	post := &Post{
		Title:       sug.Title,
		Body:        sug.Content,
		Summary:     sug.Summary,
		Tags:        sug.Tags,
		Status:      PostDraft,
		AuthorID:    authorID,
		NewsSource:  sug.Source,
		ReadTime:    sug.ReadTime,
		PublishDate: sug.PublishDate,
		CreatedAt:   now,
	}
	if target == StatusPublished {
		post.Status = PostPublished
	}

	err = s.db.Transaction(ctx, func(tx *sql.Tx) error {
		tags, _ := json.Marshal(post.Tags)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO posts (title, body, summary, tags, status, author_id,
				news_source, read_time, publish_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, post.Title, post.Body, post.Summary, string(tags), post.Status,
			post.AuthorID, post.NewsSource, post.ReadTime, post.PublishDate, post.CreatedAt)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		post.ID, _ = res.LastInsertId()

		var publishedAt any
		if target == StatusPublished {
			publishedAt = now
		}
		upd, err := tx.ExecContext(ctx, `
			UPDATE suggestions
			SET status = ?, admin_notes = ?, approved_at = ?, published_at = ?, post_id = ?
			WHERE id = ? AND status = ?
		`, target, notes, now, publishedAt, post.ID, id, StatusPending)
		if err != nil {
			return fmt.Errorf("update suggestion %d: %w", id, err)
		}
		if n, _ := upd.RowsAffected(); n == 0 {
			return fmt.Errorf("suggestion %d changed state concurrently: %w", id, ErrStateConflict)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sug.Status = target
	sug.AdminNotes = notes
	sug.ApprovedAt = &now
	if target == StatusPublished {
		sug.PublishedAt = &now
	}
	sug.PostID = &post.ID
	return sug, post, nil
}

// RejectSuggestion marks a pending suggestion rejected and records the
// moderator notes. Re-rejecting an already rejected suggestion overwrites
// the notes; rejecting an approved or published suggestion is a conflict.
func (s *Store) RejectSuggestion(ctx context.Context, id int64, notes string) (*Suggestion, error) {
	sug, err := s.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if sug.Status != StatusPending && sug.Status != StatusRejected {
		return nil, fmt.Errorf("suggestion %d is %s: %w", id, sug.Status, ErrStateConflict)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE suggestions SET status = ?, admin_notes = ?
		WHERE id = ? AND status IN (?, ?)
	`, StatusRejected, notes, id, StatusPending, StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject suggestion %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("suggestion %d changed state concurrently: %w", id, ErrStateConflict)
	}

	sug.Status = StatusRejected
	sug.AdminNotes = notes
	return sug, nil
}

// GetPost retrieves a post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (*Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, summary, tags, status, author_id,
			news_source, read_time, publish_date, created_at
		FROM posts WHERE id = ?
	`, id)

	var post Post
	var tags, summary, newsSource, readTime, publishDate sql.NullString
	err := row.Scan(&post.ID, &post.Title, &post.Body, &summary, &tags,
		&post.Status, &post.AuthorID, &newsSource, &readTime, &publishDate, &post.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	post.Summary = summary.String
	post.NewsSource = newsSource.String
	post.ReadTime = readTime.String
	post.PublishDate = publishDate.String
	if tags.Valid {
		json.Unmarshal([]byte(tags.String), &post.Tags)
	}
	return &post, nil
}
