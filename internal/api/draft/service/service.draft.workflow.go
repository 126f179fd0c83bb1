package draftsvc

import (
	"context"
	"strings"
	"sync"
	"time"

	basesvc "meta_content/internal/api/base/service"
	contentmodels "meta_content/internal/api/content/models"
	draftmodels "meta_content/internal/api/draft/models"
	integrationmodels "meta_content/internal/api/integration/models"
	"meta_content/internal/common"
	"meta_content/internal/generation"
	"meta_content/internal/logger"
	"meta_content/internal/schedule"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ===== DEPENDENCY SEAMS =====
// Workflow engine chỉ phụ thuộc các interface hẹp dưới đây để test được
// bằng fake, không cần Mongo hay Slack thật.

// DraftStore là phần của draft service mà engine cần.
type DraftStore interface {
	InsertOne(ctx context.Context, data draftmodels.Draft) (draftmodels.Draft, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (draftmodels.Draft, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (draftmodels.Draft, error)
}

// PostStore tạo và dọn post khi duyệt draft.
type PostStore interface {
	InsertOne(ctx context.Context, data contentmodels.Post) (contentmodels.Post, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// ScheduleStore tạo lịch đăng khi duyệt kèm lịch.
type ScheduleStore interface {
	InsertOne(ctx context.Context, data contentmodels.Schedule) (contentmodels.Schedule, error)
}

// IntegrationStore tra cứu integration cho token outbound.
type IntegrationStore interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (integrationmodels.Integration, error)
}

// Generator là capability sinh nội dung (black box).
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (string, error)
}

// ChatDispatcher là boundary outbound duy nhất tới Slack.
type ChatDispatcher interface {
	SendMessage(ctx context.Context, token string, channel string, text string, blocks []map[string]interface{}) (string, error)
	UpdateMessage(ctx context.Context, token string, channel string, ts string, text string, blocks []map[string]interface{}) error
	OpenView(ctx context.Context, token string, triggerID string, view map[string]interface{}) error
}

// BlockBuilder dựng payload Block Kit cho từng loại message.
type BlockBuilder interface {
	Help() (string, []map[string]interface{})
	Generating() (string, []map[string]interface{})
	DraftPreview(content string, draftID string) (string, []map[string]interface{})
	SavedConfirmation() (string, []map[string]interface{})
	ScheduledConfirmation(displayTime string) (string, []map[string]interface{})
	GenerationError() (string, []map[string]interface{})
}

// WorkflowEngine sở hữu state machine của Draft. Mọi chuyển trạng thái
// đi qua FindOneAndUpdate với filter kèm trạng thái hiện tại — DB là
// nguồn sự thật duy nhất, không có lock trong process.
type WorkflowEngine struct {
	drafts       DraftStore
	posts        PostStore
	schedules    ScheduleStore
	integrations IntegrationStore
	generator    Generator
	dispatcher   ChatDispatcher
	blocks       BlockBuilder
	now          func() time.Time
}

// NewWorkflowEngine tạo engine với đầy đủ dependency.
func NewWorkflowEngine(drafts DraftStore, posts PostStore, schedules ScheduleStore, integrations IntegrationStore, generator Generator, dispatcher ChatDispatcher, blocks BlockBuilder) *WorkflowEngine {
	return &WorkflowEngine{
		drafts:       drafts,
		posts:        posts,
		schedules:    schedules,
		integrations: integrations,
		generator:    generator,
		dispatcher:   dispatcher,
		blocks:       blocks,
		now:          time.Now,
	}
}

// greetingPhrases là các message chào hỏi/help — trả lời hướng dẫn tĩnh,
// không tạo draft.
var greetingPhrases = map[string]bool{
	"hi":       true,
	"hello":    true,
	"hey":      true,
	"help":     true,
	"start":    true,
	"xin chào": true,
	"chào":     true,
}

// IsGreeting kiểm tra text (sau khi trim, hạ chữ thường, bỏ dấu câu cuối)
// có phải câu chào/help không.
func IsGreeting(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, "!.?,")
	normalized = strings.TrimSpace(normalized)
	return greetingPhrases[normalized]
}

// HandleInboundMessage xử lý một message DM mới: tạo draft (insert là khóa
// chống xử lý trùng), gửi placeholder, chạy generation + trích lịch song
// song, rồi edit placeholder thành preview. Chạy ngoài request goroutine
// của webhook — không được panic xuyên lên trên.
func (e *WorkflowEngine) HandleInboundMessage(ctx context.Context, integration integrationmodels.Integration, channelID string, threadTs string, text string, imageURL string) error {
	log := logger.GetAppLogger()

	// Câu chào → trả lời hướng dẫn, không tạo draft
	if IsGreeting(text) {
		helpText, helpBlocks := e.blocks.Help()
		if _, err := e.dispatcher.SendMessage(ctx, integration.BotToken, channelID, helpText, helpBlocks); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không gửi được help message")
		}
		return nil
	}

	// Insert là khóa: duplicate key nghĩa là delivery khác đã nhận message này
	draft, err := e.drafts.InsertOne(ctx, draftmodels.Draft{
		IntegrationID: integration.ID,
		ChannelID:     channelID,
		ThreadTs:      threadTs,
		OriginalText:  text,
		ImageURL:      imageURL,
		Status:        draftmodels.DraftStatusGenerating,
	})
	if err != nil {
		if common.IsDuplicateKey(err) {
			log.WithFields(map[string]interface{}{
				"channelId": channelID,
				"threadTs":  threadTs,
			}).Debug("🧵 [DRAFT] Message đã có draft, bỏ qua delivery trùng")
			return nil
		}
		return err
	}

	// Gửi placeholder ngay để user biết đang xử lý; ts dùng cho edit sau
	generatingText, generatingBlocks := e.blocks.Generating()
	statusTs, err := e.dispatcher.SendMessage(ctx, integration.BotToken, channelID, generatingText, generatingBlocks)
	if err != nil {
		log.WithError(err).Warn("🧵 [DRAFT] Không gửi được placeholder message")
	} else {
		if _, err := e.drafts.FindOneAndUpdate(ctx,
			bson.M{"_id": draft.ID},
			&basesvc.UpdateData{Set: bson.M{"statusMessageTs": statusTs}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không lưu được statusMessageTs")
		}
	}

	// Fan-out: trích lịch và generation chạy song song, chờ cả hai xong
	var (
		wg        sync.WaitGroup
		extracted schedule.Extracted
		content   string
		genErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		extracted = schedule.Extract(text)
	}()
	go func() {
		defer wg.Done()
		content, genErr = e.generator.Generate(ctx, generation.Request{
			Prompt:      text,
			Guidelines:  integration.Guidelines,
			Preferences: integration.Preferences,
		})
	}()
	wg.Wait()

	if genErr != nil {
		return e.failDraft(ctx, integration, draft, statusTs, genErr)
	}

	// GENERATING → DRAFTING: chỉ ghi khi draft vẫn ở GENERATING
	updated, err := e.drafts.FindOneAndUpdate(ctx,
		bson.M{"_id": draft.ID, "status": draftmodels.DraftStatusGenerating},
		&basesvc.UpdateData{Set: bson.M{
			"status":  draftmodels.DraftStatusDrafting,
			"content": content,
			"schedule": draftmodels.ExtractedSchedule{
				DayOfWeek: extracted.DayOfWeek,
				Time24h:   extracted.Time24h,
				Timezone:  extracted.Timezone,
			},
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		return err
	}

	// Edit placeholder thành preview kèm nút duyệt/sửa
	previewText, previewBlocks := e.blocks.DraftPreview(updated.Content, updated.ID.Hex())
	if statusTs != "" {
		if err := e.dispatcher.UpdateMessage(ctx, integration.BotToken, channelID, statusTs, previewText, previewBlocks); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không edit được placeholder thành preview")
		}
	} else {
		if _, err := e.dispatcher.SendMessage(ctx, integration.BotToken, channelID, previewText, previewBlocks); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không gửi được preview message")
		}
	}

	return nil
}

// failDraft chuyển draft sang FAILED và báo lỗi cho user (best-effort).
func (e *WorkflowEngine) failDraft(ctx context.Context, integration integrationmodels.Integration, draft draftmodels.Draft, statusTs string, cause error) error {
	log := logger.GetAppLogger()
	log.WithError(cause).WithField("draftId", draft.ID.Hex()).Error("🧵 [DRAFT] Generation thất bại")

	if _, err := e.drafts.FindOneAndUpdate(ctx,
		bson.M{"_id": draft.ID, "status": draftmodels.DraftStatusGenerating},
		&basesvc.UpdateData{Set: bson.M{
			"status":       draftmodels.DraftStatusFailed,
			"errorMessage": cause.Error(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	); err != nil {
		log.WithError(err).Error("🧵 [DRAFT] Không chuyển được draft sang FAILED")
	}

	errText, errBlocks := e.blocks.GenerationError()
	if statusTs != "" {
		if err := e.dispatcher.UpdateMessage(ctx, integration.BotToken, draft.ChannelID, statusTs, errText, errBlocks); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không edit được placeholder thành thông báo lỗi")
		}
	} else {
		if _, err := e.dispatcher.SendMessage(ctx, integration.BotToken, draft.ChannelID, errText, errBlocks); err != nil {
			log.WithError(err).Warn("🧵 [DRAFT] Không gửi được thông báo lỗi")
		}
	}

	return nil
}

// ApplyFeedback regenerate content theo feedback của user. Chỉ áp dụng cho
// draft đang DRAFTING; feedback trùng vẫn được áp lại (append vào lịch sử).
// Khi generation lỗi, content hiện tại giữ nguyên.
func (e *WorkflowEngine) ApplyFeedback(ctx context.Context, draftID primitive.ObjectID, feedback string) error {
	log := logger.GetAppLogger()

	draft, err := e.drafts.FindOneById(ctx, draftID)
	if err != nil {
		log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🧵 [DRAFT] Feedback cho draft không tồn tại, bỏ qua")
		return nil
	}
	if draft.Status != draftmodels.DraftStatusDrafting {
		log.WithFields(map[string]interface{}{
			"draftId": draftID.Hex(),
			"status":  draft.Status,
		}).Info("🧵 [DRAFT] Feedback cho draft không ở DRAFTING, bỏ qua")
		return nil
	}

	integration, err := e.integrations.FindOneById(ctx, draft.IntegrationID)
	if err != nil {
		log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🧵 [DRAFT] Không tìm thấy integration của draft, bỏ qua")
		return nil
	}

	content, err := e.generator.Generate(ctx, generation.Request{
		Prompt:      draft.OriginalText,
		Guidelines:  integration.Guidelines,
		Preferences: integration.Preferences,
		Content:     draft.Content,
		Feedback:    append(append([]string{}, draft.Feedback...), feedback),
	})
	if err != nil {
		log.WithError(err).WithField("draftId", draftID.Hex()).Error("🧵 [DRAFT] Regenerate thất bại, giữ nguyên content")
		errText, errBlocks := e.blocks.GenerationError()
		if _, sendErr := e.dispatcher.SendMessage(ctx, integration.BotToken, draft.ChannelID, errText, errBlocks); sendErr != nil {
			log.WithError(sendErr).Warn("🧵 [DRAFT] Không gửi được thông báo lỗi regenerate")
		}
		return nil
	}

	updated, err := e.drafts.FindOneAndUpdate(ctx,
		bson.M{"_id": draftID, "status": draftmodels.DraftStatusDrafting},
		&basesvc.UpdateData{
			Set:  bson.M{"content": content},
			Push: bson.M{"feedback": feedback},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if common.IsNotFound(err) {
			// Draft đã được duyệt trong lúc regenerate — last-writer-wins
			return nil
		}
		return err
	}

	// Preview mới gửi thành message riêng để user còn thấy lịch sử các bản
	previewText, previewBlocks := e.blocks.DraftPreview(updated.Content, updated.ID.Hex())
	if _, err := e.dispatcher.SendMessage(ctx, integration.BotToken, draft.ChannelID, previewText, previewBlocks); err != nil {
		log.WithError(err).Warn("🧵 [DRAFT] Không gửi được preview mới sau feedback")
	}

	return nil
}

// Approve duyệt draft đang DRAFTING: tạo Post, nếu sched đủ ngày + giờ thì
// tính thời điểm đăng và tạo Schedule (→ SCHEDULED), không thì → SAVED.
// Duyệt lại draft đã terminal là no-op; duyệt draft đang GENERATING cũng
// là no-op (chưa có content để duyệt). Lỗi gửi confirmation không rollback
// trạng thái đã ghi.
func (e *WorkflowEngine) Approve(ctx context.Context, draftID primitive.ObjectID, sched draftmodels.ExtractedSchedule) error {
	log := logger.GetAppLogger()

	draft, err := e.drafts.FindOneById(ctx, draftID)
	if err != nil {
		log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🧵 [DRAFT] Approve cho draft không tồn tại, bỏ qua")
		return nil
	}
	if draft.Status != draftmodels.DraftStatusDrafting {
		// SAVED/SCHEDULED: redelivery của lần duyệt trước. GENERATING: click
		// nhanh hơn generation. Cả hai đều bỏ qua.
		log.WithFields(map[string]interface{}{
			"draftId": draftID.Hex(),
			"status":  draft.Status,
		}).Info("🧵 [DRAFT] Approve cho draft không ở DRAFTING, bỏ qua")
		return nil
	}

	integration, err := e.integrations.FindOneById(ctx, draft.IntegrationID)
	if err != nil {
		log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🧵 [DRAFT] Không tìm thấy integration của draft, bỏ qua")
		return nil
	}

	// Tính thời điểm đăng trước khi tạo record nào
	withSchedule := sched.IsComplete()
	targetStatus := draftmodels.DraftStatusSaved
	postStatus := contentmodels.PostStatusDraft
	var publishAt time.Time
	if withSchedule {
		publishAt, err = e.computePublishAt(sched)
		if err != nil {
			log.WithError(err).WithField("draftId", draftID.Hex()).Error("🧵 [DRAFT] Lịch trích xuất không hợp lệ, lưu không kèm lịch")
			withSchedule = false
		} else {
			targetStatus = draftmodels.DraftStatusScheduled
			postStatus = contentmodels.PostStatusScheduled
		}
	}

	post, err := e.posts.InsertOne(ctx, contentmodels.Post{
		UserID:        integration.UserID,
		IntegrationID: integration.ID,
		DraftID:       draft.ID,
		Content:       draft.Content,
		ImageURL:      draft.ImageURL,
		Status:        postStatus,
	})
	if err != nil {
		return err
	}

	if withSchedule {
		if _, err := e.schedules.InsertOne(ctx, contentmodels.Schedule{
			PostID:    post.ID,
			PublishAt: publishAt.UnixMilli(),
			Timezone:  sched.Timezone,
			Status:    contentmodels.ScheduleStatusPending,
		}); err != nil {
			return err
		}
	}

	// DRAFTING → SAVED/SCHEDULED, chỉ khi chưa ai duyệt trước
	if _, err := e.drafts.FindOneAndUpdate(ctx,
		bson.M{"_id": draftID, "status": draftmodels.DraftStatusDrafting},
		&basesvc.UpdateData{Set: bson.M{
			"status": targetStatus,
			"postId": post.ID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	); err != nil {
		if common.IsNotFound(err) {
			// Thua race với lần duyệt khác: dọn post vừa tạo
			if delErr := e.posts.DeleteById(ctx, post.ID); delErr != nil {
				log.WithError(delErr).Warn("🧵 [DRAFT] Không dọn được post thừa sau race approve")
			}
			return nil
		}
		return err
	}

	// Confirmation best-effort; trạng thái đã ghi là nguồn sự thật
	var confirmText string
	var confirmBlocks []map[string]interface{}
	if withSchedule {
		display := publishAt.Format("15:04 Mon 02/01/2006 MST")
		if sched.Timezone != "" {
			if loc, locErr := schedule.LoadTimezone(sched.Timezone); locErr == nil {
				display = publishAt.In(loc).Format("15:04 Mon 02/01/2006 MST")
			}
		}
		confirmText, confirmBlocks = e.blocks.ScheduledConfirmation(display)
	} else {
		confirmText, confirmBlocks = e.blocks.SavedConfirmation()
	}
	if _, err := e.dispatcher.SendMessage(ctx, integration.BotToken, draft.ChannelID, confirmText, confirmBlocks); err != nil {
		log.WithError(err).Warn("🧵 [DRAFT] Không gửi được confirmation, trạng thái vẫn giữ nguyên")
	}

	return nil
}

// computePublishAt tính thời điểm đăng một lần từ lịch trích xuất
// (ngày trong tuần + giờ, timezone mặc định UTC nếu không có).
func (e *WorkflowEngine) computePublishAt(sched draftmodels.ExtractedSchedule) (time.Time, error) {
	rule, err := schedule.NewRule(schedule.FreqWeekly, sched.DayOfWeek, 0, sched.Time24h)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := schedule.LoadTimezone(sched.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.NextOccurrence(rule, e.now(), loc), nil
}
