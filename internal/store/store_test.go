package store

import (
	"testing"

	"github.com/mmcdole/scrub/internal/domain"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResumeStore(t *testing.T) {
	for _, mode := range []struct {
		name string
		dir  func() string
	}{
		{"memory", func() string { return "" }},
		{"bolt", func() string { return t.TempDir() }},
	} {
		Convey("ResumeStore ("+mode.name+")", t, func() {
			s, err := NewResumeStore(mode.dir())
			So(err, ShouldBeNil)
			defer s.Close()

			Convey("Get should miss for unknown media", func() {
				_, ok := s.Get("/videos/missing.mkv")
				So(ok, ShouldBeFalse)
			})

			Convey("Saved records should be returned by Get", func() {
				So(s.Save(domain.ResumeRecord{MediaKey: "/videos/a.mkv", Position: 30, Duration: 120}), ShouldBeNil)
				rec, ok := s.Get("/videos/a.mkv")
				So(ok, ShouldBeTrue)
				So(rec.Position, ShouldEqual, 30)
				So(rec.UpdatedAt, ShouldBeGreaterThan, 0)
				So(rec.PercentComplete(), ShouldEqual, 0.25)
			})

			Convey("Save should overwrite the previous position", func() {
				So(s.Save(domain.ResumeRecord{MediaKey: "a", Position: 10, Duration: 100}), ShouldBeNil)
				So(s.Save(domain.ResumeRecord{MediaKey: "a", Position: 50, Duration: 100}), ShouldBeNil)
				rec, _ := s.Get("a")
				So(rec.Position, ShouldEqual, 50)
			})

			Convey("Save should reject records without a key", func() {
				So(s.Save(domain.ResumeRecord{Position: 1}), ShouldNotBeNil)
			})

			Convey("Delete should remove the record", func() {
				So(s.Save(domain.ResumeRecord{MediaKey: "a", Position: 10}), ShouldBeNil)
				So(s.Delete("a"), ShouldBeNil)
				_, ok := s.Get("a")
				So(ok, ShouldBeFalse)
				So(s.Delete("never-saved"), ShouldBeNil)
			})

			Convey("List should order by most recent update", func() {
				So(s.Save(domain.ResumeRecord{MediaKey: "old", Position: 1, UpdatedAt: 100}), ShouldBeNil)
				So(s.Save(domain.ResumeRecord{MediaKey: "new", Position: 2, UpdatedAt: 200}), ShouldBeNil)
				records, err := s.List()
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 2)
				So(records[0].MediaKey, ShouldEqual, "new")
				So(records[1].MediaKey, ShouldEqual, "old")
			})
		})
	}

	Convey("Records should survive reopening the database", t, func() {
		dir := t.TempDir()
		s, err := NewResumeStore(dir)
		So(err, ShouldBeNil)
		So(s.Save(domain.ResumeRecord{MediaKey: "/videos/a.mkv", Position: 42, Duration: 600}), ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		reopened, err := NewResumeStore(dir)
		So(err, ShouldBeNil)
		defer reopened.Close()
		rec, ok := reopened.Get("/videos/a.mkv")
		So(ok, ShouldBeTrue)
		So(rec.Position, ShouldEqual, 42)
	})
}
