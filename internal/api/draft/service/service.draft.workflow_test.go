// Package draftsvc - Test state machine của workflow engine với fake store,
// không cần Mongo hay Slack thật.
package draftsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	basesvc "meta_content/internal/api/base/service"
	contentmodels "meta_content/internal/api/content/models"
	draftmodels "meta_content/internal/api/draft/models"
	integrationmodels "meta_content/internal/api/integration/models"
	"meta_content/internal/common"
	"meta_content/internal/generation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ===== FAKES =====

type fakeDraftStore struct {
	byID     map[primitive.ObjectID]draftmodels.Draft
	byThread map[string]primitive.ObjectID
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{
		byID:     map[primitive.ObjectID]draftmodels.Draft{},
		byThread: map[string]primitive.ObjectID{},
	}
}

func (f *fakeDraftStore) InsertOne(ctx context.Context, data draftmodels.Draft) (draftmodels.Draft, error) {
	key := data.ChannelID + "|" + data.ThreadTs
	if _, dup := f.byThread[key]; dup {
		return draftmodels.Draft{}, common.ErrMongoDuplicate
	}
	data.ID = primitive.NewObjectID()
	f.byID[data.ID] = data
	f.byThread[key] = data.ID
	return data, nil
}

func (f *fakeDraftStore) FindOneById(ctx context.Context, id primitive.ObjectID) (draftmodels.Draft, error) {
	d, ok := f.byID[id]
	if !ok {
		return draftmodels.Draft{}, common.ErrNotFound
	}
	return d, nil
}

func (f *fakeDraftStore) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (draftmodels.Draft, error) {
	fm, ok := filter.(bson.M)
	if !ok {
		return draftmodels.Draft{}, errors.New("filter phải là bson.M")
	}
	id, ok := fm["_id"].(primitive.ObjectID)
	if !ok {
		return draftmodels.Draft{}, errors.New("filter thiếu _id")
	}
	d, found := f.byID[id]
	if !found {
		return draftmodels.Draft{}, common.ErrNotFound
	}
	if want, has := fm["status"]; has && d.Status != want.(string) {
		return draftmodels.Draft{}, common.ErrNotFound
	}

	ud, ok := update.(*basesvc.UpdateData)
	if !ok {
		return draftmodels.Draft{}, errors.New("update phải là *basesvc.UpdateData")
	}
	for k, v := range ud.Set {
		switch k {
		case "status":
			d.Status = v.(string)
		case "content":
			d.Content = v.(string)
		case "schedule":
			d.Schedule = v.(draftmodels.ExtractedSchedule)
		case "statusMessageTs":
			d.StatusMessageTs = v.(string)
		case "errorMessage":
			d.ErrorMessage = v.(string)
		case "postId":
			d.PostID = v.(primitive.ObjectID)
		}
	}
	if fb, has := ud.Push["feedback"]; has {
		d.Feedback = append(d.Feedback, fb.(string))
	}
	f.byID[id] = d
	return d, nil
}

type fakePostStore struct {
	posts   map[primitive.ObjectID]contentmodels.Post
	deleted []primitive.ObjectID
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[primitive.ObjectID]contentmodels.Post{}}
}

func (f *fakePostStore) InsertOne(ctx context.Context, data contentmodels.Post) (contentmodels.Post, error) {
	data.ID = primitive.NewObjectID()
	f.posts[data.ID] = data
	return data, nil
}

func (f *fakePostStore) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeScheduleStore struct {
	schedules []contentmodels.Schedule
}

func (f *fakeScheduleStore) InsertOne(ctx context.Context, data contentmodels.Schedule) (contentmodels.Schedule, error) {
	data.ID = primitive.NewObjectID()
	f.schedules = append(f.schedules, data)
	return data, nil
}

type fakeIntegrationStore struct {
	byID map[primitive.ObjectID]integrationmodels.Integration
}

func (f *fakeIntegrationStore) FindOneById(ctx context.Context, id primitive.ObjectID) (integrationmodels.Integration, error) {
	i, ok := f.byID[id]
	if !ok {
		return integrationmodels.Integration{}, common.ErrNotFound
	}
	return i, nil
}

type fakeGenerator struct {
	content string
	err     error
	calls   int
	lastReq generation.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	f.calls++
	f.lastReq = req
	return f.content, f.err
}

type sentMessage struct {
	channel string
	text    string
}

type fakeDispatcher struct {
	sent    []sentMessage
	updated []sentMessage
	views   int
	sendErr error
	tsSeq   int
}

func (f *fakeDispatcher) SendMessage(ctx context.Context, token, channel, text string, blocks []map[string]interface{}) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channel: channel, text: text})
	f.tsSeq++
	return fmt.Sprintf("100%d.000", f.tsSeq), nil
}

func (f *fakeDispatcher) UpdateMessage(ctx context.Context, token, channel, ts, text string, blocks []map[string]interface{}) error {
	f.updated = append(f.updated, sentMessage{channel: channel, text: text})
	return nil
}

func (f *fakeDispatcher) OpenView(ctx context.Context, token, triggerID string, view map[string]interface{}) error {
	f.views++
	return nil
}

// stubBlocks trả về text phân biệt được theo loại message
type stubBlocks struct{}

func (stubBlocks) Help() (string, []map[string]interface{})       { return "help", nil }
func (stubBlocks) Generating() (string, []map[string]interface{}) { return "generating", nil }
func (stubBlocks) DraftPreview(content, draftID string) (string, []map[string]interface{}) {
	return "preview:" + content, nil
}
func (stubBlocks) SavedConfirmation() (string, []map[string]interface{}) { return "saved", nil }
func (stubBlocks) ScheduledConfirmation(displayTime string) (string, []map[string]interface{}) {
	return "scheduled:" + displayTime, nil
}
func (stubBlocks) GenerationError() (string, []map[string]interface{}) { return "error", nil }

type engineFixture struct {
	engine       *WorkflowEngine
	drafts       *fakeDraftStore
	posts        *fakePostStore
	schedules    *fakeScheduleStore
	integrations *fakeIntegrationStore
	generator    *fakeGenerator
	dispatcher   *fakeDispatcher
	integration  integrationmodels.Integration
}

func newEngineFixture() *engineFixture {
	drafts := newFakeDraftStore()
	posts := newFakePostStore()
	schedules := &fakeScheduleStore{}
	integration := integrationmodels.Integration{
		ID:             primitive.NewObjectID(),
		UserID:         primitive.NewObjectID(),
		Provider:       "slack",
		ExternalUserID: "U123",
		BotToken:       "xoxb-test",
		Active:         true,
	}
	integrations := &fakeIntegrationStore{byID: map[primitive.ObjectID]integrationmodels.Integration{
		integration.ID: integration,
	}}
	generator := &fakeGenerator{content: "generated content"}
	dispatcher := &fakeDispatcher{}

	engine := NewWorkflowEngine(drafts, posts, schedules, integrations, generator, dispatcher, stubBlocks{})
	engine.now = func() time.Time { return time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC) }

	return &engineFixture{
		engine:       engine,
		drafts:       drafts,
		posts:        posts,
		schedules:    schedules,
		integrations: integrations,
		generator:    generator,
		dispatcher:   dispatcher,
		integration:  integration,
	}
}

// seedDraft tạo sẵn một draft ở trạng thái cho trước
func (fx *engineFixture) seedDraft(status string) draftmodels.Draft {
	d, _ := fx.drafts.InsertOne(context.Background(), draftmodels.Draft{
		IntegrationID: fx.integration.ID,
		ChannelID:     "D001",
		ThreadTs:      "1700000000.0001",
		OriginalText:  "write about coffee",
		Status:        status,
	})
	if status != draftmodels.DraftStatusGenerating {
		d.Content = "first version"
		d.Status = status
		fx.drafts.byID[d.ID] = d
	}
	return d
}

// ===== INBOUND MESSAGE =====

func TestIsGreeting(t *testing.T) {
	assert.True(t, IsGreeting("hello"))
	assert.True(t, IsGreeting("  Hi!  "))
	assert.True(t, IsGreeting("xin chào"))
	assert.False(t, IsGreeting("hello world, write me a post"))
	assert.False(t, IsGreeting("write about coffee"))
}

func TestHandleInboundMessage_CreatesDraftAndTransitionsToDrafting(t *testing.T) {
	fx := newEngineFixture()

	err := fx.engine.HandleInboundMessage(context.Background(), fx.integration, "D001", "1700000000.0001", "post about our launch this friday at 2pm PST", "")
	require.NoError(t, err)

	require.Len(t, fx.drafts.byID, 1)
	for _, d := range fx.drafts.byID {
		assert.Equal(t, draftmodels.DraftStatusDrafting, d.Status)
		assert.Equal(t, "generated content", d.Content)
		assert.Equal(t, "friday", d.Schedule.DayOfWeek)
		assert.Equal(t, "14:00", d.Schedule.Time24h)
		assert.Equal(t, "PST", d.Schedule.Timezone)
		assert.NotEmpty(t, d.StatusMessageTs, "placeholder ts phải được lưu để edit")
	}

	// Placeholder đã gửi, rồi được edit thành preview
	require.Len(t, fx.dispatcher.sent, 1)
	assert.Equal(t, "generating", fx.dispatcher.sent[0].text)
	require.Len(t, fx.dispatcher.updated, 1)
	assert.Equal(t, "preview:generated content", fx.dispatcher.updated[0].text)
}

func TestHandleInboundMessage_DuplicateDeliveryIsNoOp(t *testing.T) {
	fx := newEngineFixture()
	fx.seedDraft(draftmodels.DraftStatusGenerating)

	err := fx.engine.HandleInboundMessage(context.Background(), fx.integration, "D001", "1700000000.0001", "write about coffee", "")
	require.NoError(t, err)

	assert.Len(t, fx.drafts.byID, 1, "không được tạo draft thứ hai")
	assert.Equal(t, 0, fx.generator.calls, "delivery trùng không được gọi generation")
	assert.Empty(t, fx.dispatcher.sent)
}

func TestHandleInboundMessage_GreetingSendsHelpWithoutDraft(t *testing.T) {
	fx := newEngineFixture()

	err := fx.engine.HandleInboundMessage(context.Background(), fx.integration, "D001", "1700000000.0002", "hello!", "")
	require.NoError(t, err)

	assert.Empty(t, fx.drafts.byID, "câu chào không được tạo draft")
	assert.Equal(t, 0, fx.generator.calls)
	require.Len(t, fx.dispatcher.sent, 1)
	assert.Equal(t, "help", fx.dispatcher.sent[0].text)
}

func TestHandleInboundMessage_GenerationFailureMarksFailed(t *testing.T) {
	fx := newEngineFixture()
	fx.generator.err = errors.New("model overloaded")

	err := fx.engine.HandleInboundMessage(context.Background(), fx.integration, "D001", "1700000000.0003", "write about coffee", "")
	require.NoError(t, err)

	require.Len(t, fx.drafts.byID, 1)
	for _, d := range fx.drafts.byID {
		assert.Equal(t, draftmodels.DraftStatusFailed, d.Status)
		assert.Equal(t, "model overloaded", d.ErrorMessage)
		assert.Empty(t, d.Content)
	}
	// Placeholder được edit thành thông báo lỗi
	require.Len(t, fx.dispatcher.updated, 1)
	assert.Equal(t, "error", fx.dispatcher.updated[0].text)
}

// ===== FEEDBACK =====

func TestApplyFeedback_RegeneratesAndAppendsHistory(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)
	fx.generator.content = "improved content"

	err := fx.engine.ApplyFeedback(context.Background(), d.ID, "make it shorter")
	require.NoError(t, err)

	updated := fx.drafts.byID[d.ID]
	assert.Equal(t, draftmodels.DraftStatusDrafting, updated.Status, "feedback giữ draft ở DRAFTING")
	assert.Equal(t, "improved content", updated.Content)
	assert.Equal(t, []string{"make it shorter"}, updated.Feedback)

	// Generation nhận content hiện tại + lịch sử feedback
	assert.Equal(t, "first version", fx.generator.lastReq.Content)
	assert.Equal(t, []string{"make it shorter"}, fx.generator.lastReq.Feedback)

	// Preview mới là message riêng, không edit message cũ
	require.Len(t, fx.dispatcher.sent, 1)
	assert.Equal(t, "preview:improved content", fx.dispatcher.sent[0].text)
	assert.Empty(t, fx.dispatcher.updated)
}

func TestApplyFeedback_GenerationFailureKeepsContent(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)
	fx.generator.err = errors.New("timeout")

	err := fx.engine.ApplyFeedback(context.Background(), d.ID, "make it shorter")
	require.NoError(t, err)

	updated := fx.drafts.byID[d.ID]
	assert.Equal(t, "first version", updated.Content, "regenerate lỗi phải giữ nguyên content")
	assert.Empty(t, updated.Feedback, "feedback không được ghi khi regenerate lỗi")
	require.Len(t, fx.dispatcher.sent, 1)
	assert.Equal(t, "error", fx.dispatcher.sent[0].text)
}

func TestApplyFeedback_NonDraftingStatusIsNoOp(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusSaved)

	err := fx.engine.ApplyFeedback(context.Background(), d.ID, "make it shorter")
	require.NoError(t, err)

	assert.Equal(t, 0, fx.generator.calls)
	assert.Empty(t, fx.dispatcher.sent)
}

// ===== APPROVE =====

func TestApprove_WithoutScheduleSavesPost(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)

	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{})
	require.NoError(t, err)

	updated := fx.drafts.byID[d.ID]
	assert.Equal(t, draftmodels.DraftStatusSaved, updated.Status)
	assert.False(t, updated.PostID.IsZero())

	require.Len(t, fx.posts.posts, 1)
	post := fx.posts.posts[updated.PostID]
	assert.Equal(t, contentmodels.PostStatusDraft, post.Status)
	assert.Equal(t, "first version", post.Content)
	assert.Equal(t, d.ID, post.DraftID)

	assert.Empty(t, fx.schedules.schedules, "không có lịch thì không được tạo Schedule")
	require.Len(t, fx.dispatcher.sent, 1)
	assert.Equal(t, "saved", fx.dispatcher.sent[0].text)
}

func TestApprove_WithScheduleCreatesScheduleRecord(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)

	// now là thứ Tư 06/03/2024 15:00 UTC → thứ Sáu kế tiếp là 08/03 14:00 UTC
	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{
		DayOfWeek: "friday",
		Time24h:   "14:00",
	})
	require.NoError(t, err)

	updated := fx.drafts.byID[d.ID]
	assert.Equal(t, draftmodels.DraftStatusScheduled, updated.Status)

	require.Len(t, fx.posts.posts, 1)
	assert.Equal(t, contentmodels.PostStatusScheduled, fx.posts.posts[updated.PostID].Status)

	require.Len(t, fx.schedules.schedules, 1)
	sched := fx.schedules.schedules[0]
	assert.Equal(t, updated.PostID, sched.PostID)
	assert.Equal(t, contentmodels.ScheduleStatusPending, sched.Status)
	expected := time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, expected.UnixMilli(), sched.PublishAt)
}

func TestApprove_WhileGeneratingIsNoOp(t *testing.T) {
	// User click approve nhanh hơn generation: chưa có content để duyệt
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusGenerating)

	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{})
	require.NoError(t, err)

	assert.Equal(t, draftmodels.DraftStatusGenerating, fx.drafts.byID[d.ID].Status)
	assert.Empty(t, fx.posts.posts)
	assert.Empty(t, fx.dispatcher.sent)
}

func TestApprove_TerminalRedeliveryIsNoOp(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusScheduled)

	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{})
	require.NoError(t, err)

	assert.Empty(t, fx.posts.posts, "duyệt lại draft terminal không được tạo post mới")
	assert.Empty(t, fx.dispatcher.sent)
}

func TestApprove_ConfirmationFailureKeepsState(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)
	fx.dispatcher.sendErr = errors.New("slack down")

	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{})
	require.NoError(t, err)

	assert.Equal(t, draftmodels.DraftStatusSaved, fx.drafts.byID[d.ID].Status, "lỗi gửi confirmation không được rollback trạng thái")
	assert.Len(t, fx.posts.posts, 1)
}

func TestApprove_InvalidScheduleFallsBackToSaved(t *testing.T) {
	fx := newEngineFixture()
	d := fx.seedDraft(draftmodels.DraftStatusDrafting)

	err := fx.engine.Approve(context.Background(), d.ID, draftmodels.ExtractedSchedule{
		DayOfWeek: "friday",
		Time24h:   "14:00",
		Timezone:  "NOT_A_ZONE",
	})
	require.NoError(t, err)

	assert.Equal(t, draftmodels.DraftStatusSaved, fx.drafts.byID[d.ID].Status)
	assert.Empty(t, fx.schedules.schedules)
}

// ===== STATE TABLE =====

func TestDraftTransitions(t *testing.T) {
	assert.True(t, draftmodels.CanTransition(draftmodels.DraftStatusGenerating, draftmodels.DraftStatusDrafting))
	assert.True(t, draftmodels.CanTransition(draftmodels.DraftStatusGenerating, draftmodels.DraftStatusFailed))
	assert.True(t, draftmodels.CanTransition(draftmodels.DraftStatusDrafting, draftmodels.DraftStatusDrafting))
	assert.True(t, draftmodels.CanTransition(draftmodels.DraftStatusDrafting, draftmodels.DraftStatusScheduled))
	assert.False(t, draftmodels.CanTransition(draftmodels.DraftStatusGenerating, draftmodels.DraftStatusSaved))
	assert.False(t, draftmodels.CanTransition(draftmodels.DraftStatusSaved, draftmodels.DraftStatusDrafting))
	assert.True(t, draftmodels.IsTerminalStatus(draftmodels.DraftStatusFailed))
	assert.False(t, draftmodels.IsTerminalStatus(draftmodels.DraftStatusDrafting))
}
