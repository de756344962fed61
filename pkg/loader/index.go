package loader

import "github.com/Dicklesworthstone/skillport/pkg/model"

// Index gives O(1) lookup of catalog entries by id.
type Index struct {
	Courses     map[string]*model.Course
	Jobs        map[string]*model.Job
	Consultants map[string]*model.Consultant
}

// BuildIndex indexes the dataset plus any jobs fetched from the API.
func BuildIndex(ds Dataset, jobs []model.Job) *Index {
	idx := &Index{
		Courses:     make(map[string]*model.Course, len(ds.Courses)),
		Jobs:        make(map[string]*model.Job, len(jobs)),
		Consultants: make(map[string]*model.Consultant, len(ds.Consultants)),
	}
	for i := range ds.Courses {
		idx.Courses[ds.Courses[i].ID] = &ds.Courses[i]
	}
	for i := range jobs {
		idx.Jobs[jobs[i].ID] = &jobs[i]
	}
	for i := range ds.Consultants {
		idx.Consultants[ds.Consultants[i].ID] = &ds.Consultants[i]
	}
	return idx
}

// ResolveCourses returns the courses for ids in order, skipping unknown ids.
func (x *Index) ResolveCourses(ids []string) []model.Course {
	out := make([]model.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := x.Courses[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// ResolveJobs returns the jobs for ids in order. Jobs not present in the
// listing come back as stubs carrying only the id so the bookmark stays
// visible and removable.
func (x *Index) ResolveJobs(ids []string) []model.Job {
	out := make([]model.Job, 0, len(ids))
	for _, id := range ids {
		if j, ok := x.Jobs[id]; ok {
			out = append(out, *j)
			continue
		}
		out = append(out, model.Job{ID: id, Title: "Job #" + id})
	}
	return out
}
