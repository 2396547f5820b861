package task

import (
	"fmt"
	"mime"
	"path/filepath"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pixelling/pixelling/src/containers"
	"github.com/pixelling/pixelling/src/global"
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
	"github.com/pixelling/pixelling/src/output"
	"github.com/pixelling/pixelling/src/transform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Task runs one job: read the input, transform every frame, write the
// result. Stage one decodes, stage two transforms, stage three resolves the
// output path and encodes.
type Task struct {
	job job.Job

	mtx       sync.Mutex
	started   bool
	completed bool
	failed    error

	events []TaskEvent
}

func New(j job.Job) *Task {
	return &Task{
		job: j,
	}
}

// Run executes the task once. Nothing is written unless every frame was
// transformed.
func (t *Task) Run(ctx global.Context) (job.File, error) {
	t.mtx.Lock()
	if t.started {
		t.mtx.Unlock()
		return job.File{}, fmt.Errorf("task %s already started", t.job.ID)
	}
	t.started = true
	t.mtx.Unlock()

	t.event(Started)

	file, err := t.run(ctx)

	t.mtx.Lock()
	t.completed = true
	t.failed = err
	t.mtx.Unlock()

	if err != nil {
		t.event(Failed)
		return job.File{}, err
	}

	t.event(Completed)
	return file, nil
}

func (t *Task) run(ctx global.Context) (job.File, error) {
	start := time.Now()
	fs := ctx.Instances().Fs
	cfg := ctx.Config()

	data, err := afero.ReadFile(fs, t.job.Input)
	if err != nil {
		return job.File{}, err
	}

	t.event(Read)

	if err = ctx.Err(); err != nil {
		return job.File{}, err
	}

	t.event(Decoding)

	seq, animated, err := containers.Decode(data, cfg.AnimationDefaults())
	if err != nil {
		return job.File{}, err
	}

	logrus.WithFields(logrus.Fields{
		"job":      t.job.ID,
		"frames":   seq.Len(),
		"animated": animated,
	}).Debug("decoded input")
	logrus.Trace(spew.Sdump(seq.Metadata))

	t.event(Decoded)

	if err = ctx.Err(); err != nil {
		return job.File{}, err
	}

	t.event(Transforming)

	if animated {
		seq, err = transform.TransformFrames(seq, t.job.Request, cfg.Workers)
	} else {
		var out image.Raster
		if out, err = transform.Transform(seq.Frames[0], t.job.Request); err == nil {
			seq.Frames = []image.Raster{out}
		}
	}
	if err != nil {
		return job.File{}, err
	}

	t.event(Transformed)

	if err = ctx.Err(); err != nil {
		return job.File{}, err
	}

	t.event(Writing)

	path, err := output.Resolve(fs, t.job.Destination)
	if err != nil {
		return job.File{}, err
	}

	if animated {
		err = containers.SaveAnimated(fs, seq, path)
	} else {
		err = containers.Save(fs, seq.Frames[0], path)
	}
	if err != nil {
		return job.File{}, err
	}

	info, err := fs.Stat(path)
	if err != nil {
		return job.File{}, err
	}

	t.event(Written)

	first := seq.Frames[0]
	return job.File{
		Name:        path,
		Size:        int(info.Size()),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Animated:    animated,
		Frames:      seq.Len(),
		Width:       first.Width(),
		Height:      first.Height(),
		TimeTaken:   time.Since(start),
	}, nil
}

func (t *Task) event(typ TaskEventType) {
	e := TaskEvent{
		JobID:     t.job.ID,
		Type:      typ,
		Timestamp: time.Now(),
	}

	t.mtx.Lock()
	t.events = append(t.events, e)
	t.mtx.Unlock()

	logrus.WithField("job", e.JobID).Debug(e.Type)
}

// Events returns the stages reached so far, in order.
func (t *Task) Events() []TaskEvent {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return append([]TaskEvent(nil), t.events...)
}

func (t *Task) Completed() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.completed
}

func (t *Task) Failed() error {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.failed
}

func (t *Task) Job() job.Job {
	return t.job
}
