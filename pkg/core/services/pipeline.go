package services

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/larsmoen/dcproster/pkg/core/engine"
)

// pipelineStage is the lifecycle of one session/role pipeline run
type pipelineStage string

const (
	stagePending   pipelineStage = "pending"
	stageFiltered  pipelineStage = "filtered"
	stageScored    pipelineStage = "scored"
	stageLocked    pipelineStage = "locked"
	stageAllocated pipelineStage = "allocated"
	stageDone      pipelineStage = "done"
)

var stageTransitions = map[pipelineStage][]pipelineStage{
	stagePending:   {stageFiltered},
	stageFiltered:  {stageScored},
	stageScored:    {stageLocked, stageAllocated},
	stageLocked:    {stageDone},
	stageAllocated: {stageDone},
}

// pipelineRun tracks the stage of one session/role through the
// filter → score → allocate sequence. An illegal transition is a logic
// defect and aborts the run.
type pipelineRun struct {
	role    engine.Role
	session engine.Session
	stage   pipelineStage
	logger  *zap.Logger
}

func newPipelineRun(role engine.Role, session engine.Session, logger *zap.Logger) *pipelineRun {
	return &pipelineRun{role: role, session: session, stage: stagePending, logger: logger}
}

func (p *pipelineRun) advance(to pipelineStage) error {
	if !slices.Contains(stageTransitions[p.stage], to) {
		return &engine.InvalidStateError{
			Detail: fmt.Sprintf("pipeline %s: illegal transition %s -> %s", p.role, p.stage, to),
		}
	}
	p.stage = to
	p.logger.Debug("Pipeline stage",
		zap.String("role", string(p.role)),
		zap.String("mission_id", p.session.MissionID),
		zap.String("date", dateStr(p.session.Date)),
		zap.String("stage", string(to)))
	return nil
}
