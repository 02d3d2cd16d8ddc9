package sections

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"
	"google.golang.org/api/iterator"
)

// DatastorePersister keeps the sections in Google Cloud Datastore, one
// entity per section keyed by its name. Credentials are not stored there.
type DatastorePersister struct {
	ds   *datastore.Client
	kind string
}

// NewDatastorePersister constructs a *DatastorePersister.
func NewDatastorePersister(ds *datastore.Client) *DatastorePersister {
	return &DatastorePersister{
		ds:   ds,
		kind: "VerseSection",
	}
}

type sectionEntity struct {
	// Keys lists which of the fields below were set.
	Keys      []string `datastore:"Keys,noindex"`
	Disabled  bool     `datastore:"Disabled,noindex"`
	Username  string   `datastore:"Username,noindex"`
	IconURL   string   `datastore:"IconURL,noindex"`
	IconEmoji string   `datastore:"IconEmoji,noindex"`
	Channel   string   `datastore:"Channel,noindex"`
	Hour      int      `datastore:"Hour,noindex"`
	Minute    int      `datastore:"Minute,noindex"`
	Second    int      `datastore:"Second,noindex"`
}

func (p *DatastorePersister) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	it := p.ds.Run(ctx, datastore.NewQuery(p.kind))
	for {
		var e sectionEntity
		key, err := it.Next(&e)
		if err == iterator.Done {
			return snap, nil
		}
		if err != nil {
			return snap, fmt.Errorf("reading %s entities: %w", p.kind, err)
		}

		sec, err := Parse(key.Name)
		if err != nil || sec == Slack {
			continue
		}
		settings := e.settings()
		switch sec {
		case Versebot:
			snap.Versebot = &settings
		case DailyVerse:
			snap.DailyVerse = &settings
		}
	}
}

// sectionWrite is one entity change; a nil entity deletes the key.
type sectionWrite struct {
	sec    Section
	key    *datastore.Key
	entity *sectionEntity
}

// writes lists the changes that make the datastore match snap, versebot first.
func (p *DatastorePersister) writes(snap Snapshot) []sectionWrite {
	var ws []sectionWrite
	for _, sec := range []Section{Versebot, DailyVerse} {
		w := sectionWrite{sec: sec, key: p.key(sec)}
		settings := snap.Versebot
		if sec == DailyVerse {
			settings = snap.DailyVerse
		}
		if settings != nil {
			e := newSectionEntity(*settings)
			w.entity = &e
		}
		ws = append(ws, w)
	}
	return ws
}

// Save replaces every section in one transaction.
func (p *DatastorePersister) Save(ctx context.Context, snap Snapshot) error {
	_, err := p.ds.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		for _, w := range p.writes(snap) {
			if w.entity == nil {
				if err := tx.Delete(w.key); err != nil {
					return fmt.Errorf("deleting %s: %w", w.sec, err)
				}
				continue
			}
			if _, err := tx.Put(w.key, w.entity); err != nil {
				return fmt.Errorf("saving %s: %w", w.sec, err)
			}
		}
		return nil
	})
	return err
}

func (p *DatastorePersister) key(sec Section) *datastore.Key {
	return datastore.NameKey(p.kind, sec.String(), nil)
}

func newSectionEntity(s Settings) sectionEntity {
	var e sectionEntity
	for _, pair := range s.Pairs() {
		e.Keys = append(e.Keys, pair.Key)
	}
	if s.Disabled != nil {
		e.Disabled = *s.Disabled
	}
	e.Username = deref(s.Username)
	e.IconURL = deref(s.IconURL)
	e.IconEmoji = deref(s.IconEmoji)
	e.Channel = deref(s.Channel)
	if s.Hour != nil {
		e.Hour = *s.Hour
	}
	if s.Minute != nil {
		e.Minute = *s.Minute
	}
	if s.Second != nil {
		e.Second = *s.Second
	}
	return e
}

func (e sectionEntity) settings() Settings {
	var s Settings
	for _, k := range e.Keys {
		switch k {
		case "disabled":
			s.SetDisabled(e.Disabled)
		case "username":
			s.SetUsername(e.Username)
		case "icon_url":
			s.SetIconURL(e.IconURL)
		case "icon_emoji":
			s.SetIconEmoji(e.IconEmoji)
		case "channel":
			s.SetChannel(e.Channel)
		case "hour":
			h := e.Hour
			s.Hour = &h
		case "minute":
			m := e.Minute
			s.Minute = &m
		case "second":
			sec := e.Second
			s.Second = &sec
		}
	}
	return s
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
