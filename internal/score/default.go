package score

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DefaultScorer struct {
	Path string

	db *sql.DB
}

func NewScorer(path string) *DefaultScorer {
	return &DefaultScorer{Path: path}
}

func (s *DefaultScorer) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", s.Path)
	}

	initStatement := `
	create table if not exists attempts
	  (
		  id text not null primary key,
		  song text not null,
		  correct integer not null,
		  misses integer not null,
		  total integer not null,
		  practice integer not null,
		  played_at integer not null
	  );
	create index if not exists attempts_song on attempts(song);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create tables")
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

func (s *DefaultScorer) Save(r Result) error {
	if nil == s.db {
		return ErrNoDatabase
	}
	_, err := s.db.Exec(
		"insert into attempts(id, song, correct, misses, total, practice, played_at) values(?, ?, ?, ?, ?, ?, ?)",
		r.Session, r.SongID, r.Correct, r.Misses, r.Total, int64(r.Practice), r.PlayedAt.UnixNano(),
	)
	if nil != err {
		return errors.Wrapf(err, "unable to save attempt %s", r.Session)
	}
	log.Debug("saved attempt", "song", r.SongID, "correct", r.Correct, "total", r.Total)
	return nil
}

func (s *DefaultScorer) History(id string) ([]Result, error) {
	if nil == s.db {
		return nil, ErrNoDatabase
	}
	rows, err := s.db.Query(
		"select id, song, correct, misses, total, practice, played_at from attempts where song = ? order by played_at desc",
		id,
	)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to load history for %s", id)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		var practice, playedAt int64
		if err := rows.Scan(&r.Session, &r.SongID, &r.Correct, &r.Misses, &r.Total, &practice, &playedAt); nil != err {
			log.Warn("unable to read attempt", "song", id, "err", err)
			continue
		}
		r.Practice = time.Duration(practice)
		r.PlayedAt = time.Unix(0, playedAt)
		results = append(results, r)
	}
	return results, errors.Wrap(rows.Err(), "unable to read history")
}

func (s *DefaultScorer) Song(id string) (*SongProgress, error) {
	history, err := s.History(id)
	if nil != err {
		return nil, err
	}

	p := &SongProgress{SongID: id}
	for _, r := range history {
		p.Attempts++
		if c := r.Completion(); c > p.Completion {
			p.Completion = c
		}
		if a := r.Accuracy(); a > p.BestAccuracy {
			p.BestAccuracy = a
		}
		if r.PlayedAt.After(p.LastPlayed) {
			p.LastPlayed = r.PlayedAt
		}
	}
	return p, nil
}

func (s *DefaultScorer) Player() (*PlayerStats, error) {
	if nil == s.db {
		return nil, ErrNoDatabase
	}
	row := s.db.QueryRow(`
	select
	  coalesce(sum(total), 0),
	  coalesce(sum(correct), 0),
	  coalesce(sum(case when total > 0 and correct >= total then 1 else 0 end), 0),
	  coalesce(sum(practice), 0)
	from attempts
	`)

	var p PlayerStats
	var practice int64
	if err := row.Scan(&p.NotesPlayed, &p.CorrectNotes, &p.SongsCompleted, &practice); nil != err {
		return nil, errors.Wrap(err, "unable to load player stats")
	}
	p.PracticeTime = time.Duration(practice)
	return &p, nil
}
