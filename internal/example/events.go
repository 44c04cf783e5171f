package example

type Ping struct {
	Seq int
}

type Status struct {
	Healthy bool
	Load    int
}

// Job carries a batch of work items. The slice is copied whenever one job
// fans out to several endpoints.
type Job struct {
	ID    int
	Items []int
}

func (j Job) Clone() Job {
	j.Items = append([]int(nil), j.Items...)
	return j
}
