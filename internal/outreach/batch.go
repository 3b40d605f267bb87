package outreach

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Per-lead messages recorded when an opener is not generated.
const (
	MsgLeadDataMissing = "Error: Lead data missing"
	MsgMissingAIData   = "Missing data for AI"
	MsgGenerateFailed  = "Error generating"
)

// Summary counts opener outcomes for one batch.
type Summary struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Batch runs opener and subject generation over a list of leads, one lead
// at a time, throttled to a fixed request rate.
type Batch struct {
	writer  Copywriter
	limiter *rate.Limiter
}

// NewBatch creates a Batch. requestsPerSecond <= 0 disables throttling.
func NewBatch(writer Copywriter, requestsPerSecond float64) *Batch {
	return &Batch{
		writer:  writer,
		limiter: newLimiter(requestsPerSecond),
	}
}

// GenerateOpeners writes an opener for every lead in slice order, recording
// the outcome on each lead. A failed lead never stops the batch; only context
// cancellation does.
func (b *Batch) GenerateOpeners(ctx context.Context, leads []model.Lead, salesGoal string) (Summary, error) {
	var sum Summary

	for i := range leads {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "outreach: generate openers")
		}

		lead := &leads[i]
		log := zap.L().With(zap.String("lead_id", lead.ID), zap.String("company", lead.CompanyName))

		if lead.CompanyName == "" || lead.CompanyName == model.UnknownCompany {
			markOpener(lead, model.OpenerFailed, MsgLeadDataMissing)
			sum.Failed++
			continue
		}
		if !lead.HasAIContext() {
			markOpener(lead, model.OpenerSkipped, MsgMissingAIData)
			sum.Skipped++
			continue
		}

		if err := b.limiter.Wait(ctx); err != nil {
			return sum, eris.Wrap(err, "outreach: generate openers")
		}

		opener, err := b.writer.Opener(ctx, OpenerInput{
			CompanyName: lead.CompanyName,
			Industry:    lead.Industry,
			Location:    lead.Location,
			Website:     lead.Website,
			SalesGoal:   salesGoal,
		})
		if err != nil {
			if ctx.Err() != nil {
				return sum, eris.Wrap(ctx.Err(), "outreach: generate openers")
			}
			log.Warn("outreach: opener failed", zap.Error(err))
			markOpener(lead, model.OpenerFailed, MsgGenerateFailed)
			sum.Failed++
			continue
		}

		lead.AIOpener = opener
		lead.OpenerStatus = model.OpenerGenerated
		lead.OpenerError = ""
		sum.Generated++
	}

	zap.L().Info("outreach: openers generated",
		zap.Int("leads", len(leads)),
		zap.Int("generated", sum.Generated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

// GenerateSubject returns a subject line for a lead with a generated opener.
// A previously generated subject is reused. When generation fails the
// generic fallback subject is returned and not stored.
func (b *Batch) GenerateSubject(ctx context.Context, lead *model.Lead, salesGoal string) string {
	if lead.AISubject != "" {
		return lead.AISubject
	}
	if lead.OpenerStatus != model.OpenerGenerated || lead.AIOpener == "" {
		return FallbackSubject(lead.CompanyName)
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return FallbackSubject(lead.CompanyName)
	}

	subject, err := b.writer.Subject(ctx, SubjectInput{
		CompanyName: lead.CompanyName,
		Industry:    lead.Industry,
		Opener:      lead.AIOpener,
		SalesGoal:   salesGoal,
	})
	if err != nil {
		zap.L().Warn("outreach: subject failed",
			zap.String("lead_id", lead.ID),
			zap.String("company", lead.CompanyName),
			zap.Error(err),
		)
		return FallbackSubject(lead.CompanyName)
	}

	lead.AISubject = subject
	return subject
}

// GenerateSubjects fills AISubject for every lead with a generated opener.
// It returns the number of subjects written by the model.
func (b *Batch) GenerateSubjects(ctx context.Context, leads []model.Lead, salesGoal string) (int, error) {
	var n int
	for i := range leads {
		if err := ctx.Err(); err != nil {
			return n, eris.Wrap(err, "outreach: generate subjects")
		}
		lead := &leads[i]
		if lead.OpenerStatus != model.OpenerGenerated || lead.AISubject != "" {
			continue
		}
		b.GenerateSubject(ctx, lead, salesGoal)
		if lead.AISubject != "" {
			n++
		}
	}
	return n, nil
}

// FallbackSubject is the subject used when none could be generated.
func FallbackSubject(company string) string {
	return "Following up with " + company
}

func markOpener(lead *model.Lead, status model.OpenerStatus, msg string) {
	lead.OpenerStatus = status
	lead.OpenerError = msg
	lead.AIOpener = ""
}
