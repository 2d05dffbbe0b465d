package sitetest

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// siteComment is one row of the site's comments table.
type siteComment struct {
	ID        int64
	MovieID   int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// commentRepo provides CRUD operations for the site's comments.
type commentRepo struct {
	db *sql.DB
}

func (r *commentRepo) add(movieID, userID int64, content string) (int64, error) {
	if content == "" {
		return 0, fmt.Errorf("comment content is required")
	}

	result, err := r.db.Exec(
		"INSERT INTO comments (movie_id, user_id, content) VALUES (?, ?, ?)",
		movieID, userID, content,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting insert id: %w", err)
	}
	return id, nil
}

// owner returns the user who wrote comment id.
func (r *commentRepo) owner(id int64) (int64, bool, error) {
	var userID int64
	err := r.db.QueryRow("SELECT user_id FROM comments WHERE id = ?", id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading comment: %w", err)
	}
	return userID, true, nil
}

// listByMovie returns a movie's comments, newest first.
func (r *commentRepo) listByMovie(movieID int64) ([]*siteComment, error) {
	return r.list("WHERE movie_id = ?", movieID)
}

// listByUser returns a user's comments, newest first.
func (r *commentRepo) listByUser(userID int64) ([]*siteComment, error) {
	return r.list("WHERE user_id = ?", userID)
}

func (r *commentRepo) list(where string, arg int64) (comments []*siteComment, err error) {
	rows, err := r.db.Query(
		"SELECT id, movie_id, user_id, content, created_at FROM comments "+where+" ORDER BY id DESC",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c siteComment
		if err := rows.Scan(&c.ID, &c.MovieID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepo) delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %d not found", id)
	}
	return nil
}
