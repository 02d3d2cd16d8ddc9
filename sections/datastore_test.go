package sections

import "testing"

func TestSectionEntityKeepsUnsetKeys(t *testing.T) {
	var s Settings
	s.SetDisabled(true)
	s.SetIconEmoji("book")
	s.SetTime(7, 0, 0)

	got := newSectionEntity(s).settings()

	if got.Username != nil || got.IconURL != nil || got.Channel != nil {
		t.Errorf("unset keys came back set: %+v", got.Pairs())
	}
	expected := s.Pairs()
	pairs := got.Pairs()
	if len(pairs) != len(expected) {
		t.Fatalf("expected: %v\nactual:%v", expected, pairs)
	}
	for i := range pairs {
		if pairs[i] != expected[i] {
			t.Errorf("expected: %v\nactual:%v", expected[i], pairs[i])
		}
	}
}

func TestDatastoreWrites(t *testing.T) {
	p := &DatastorePersister{kind: "VerseSection"}

	var daily Settings
	daily.SetChannel("#general")
	ws := p.writes(Snapshot{DailyVerse: &daily})

	if len(ws) != 2 {
		t.Fatalf("expected a write per section, got %d", len(ws))
	}
	if ws[0].sec != Versebot || ws[0].key.Name != "versebot" || ws[0].entity != nil {
		t.Errorf("expected versebot to be deleted first, got %+v", ws[0])
	}
	if ws[1].sec != DailyVerse || ws[1].key.Name != "daily_verse" || ws[1].entity == nil {
		t.Fatalf("expected daily_verse to be put second, got %+v", ws[1])
	}
	if ws[1].entity.Channel != "#general" || ws[1].key.Kind != "VerseSection" {
		t.Errorf("unexpected entity %+v under %v", ws[1].entity, ws[1].key)
	}
}
