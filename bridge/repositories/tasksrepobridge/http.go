package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/tasktracker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	var (
		tasks []tasksrepo.Task
		err   error
	)

	if raw := web.QueryParam(r, "completed"); raw != "" {
		completed, perr := strconv.ParseBool(raw)
		if perr != nil {
			return errs.Newf(errs.InvalidArgument, "invalid completed filter %q", raw)
		}
		tasks, err = b.tasksRepository.ListByCompleted(ctx, completed)
	} else {
		tasks, err = b.tasksRepository.GetAll(ctx)
	}
	if err != nil {
		return b.toError(ctx, err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	task, terr := b.tasksRepository.GetByID(ctx, id)
	if terr != nil {
		return b.toError(ctx, terr)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var input CreateTaskRequest
	if err := web.Decode(r, &input); err != nil {
		return errs.Newf(errs.InvalidArgument, "decode: %s", err)
	}

	task, err := b.tasksRepository.Add(ctx, input.Title)
	if err != nil {
		return b.toError(ctx, err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpToggle(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	task, terr := b.tasksRepository.ToggleComplete(ctx, id)
	if terr != nil {
		return b.toError(ctx, terr)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	if terr := b.tasksRepository.Delete(ctx, id); terr != nil {
		return b.toError(ctx, terr)
	}

	return nil
}

// parseID reads the task_id path value, accepting only positive integers.
func parseID(r *http.Request) (int64, *errs.Error) {
	raw := web.Param(r, "task_id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Newf(errs.InvalidArgument, "invalid task id %q", raw)
	}
	return id, nil
}

// toError maps a repository error onto its HTTP error code.
func (b *bridge) toError(ctx context.Context, err error) *errs.Error {
	var nf *tasksrepo.NotFoundError
	if errors.As(err, &nf) {
		b.log.DebugContext(ctx, "task lookup missed", "task_id", nf.ID)
		return errs.New(errs.NotFound, nf)
	}
	return errs.New(errs.InternalOnlyLog, err)
}
