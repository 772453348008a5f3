package models

// Status approval chain:
// PENDING -> APPROVED_BY_GD -> APPROVED_BY_FM -> APPROVED_BY_ADMIN
// dengan cabang reject di tiap tahap. REJECTED_* dan CANCELLED terminal.
type BookingStatus string

const (
	StatusPending         BookingStatus = "PENDING"
	StatusApprovedByGD    BookingStatus = "APPROVED_BY_GD"
	StatusApprovedByFM    BookingStatus = "APPROVED_BY_FM"
	StatusApprovedByAdmin BookingStatus = "APPROVED_BY_ADMIN"
	StatusRejectedByGD    BookingStatus = "REJECTED_BY_GD"
	StatusRejectedByFM    BookingStatus = "REJECTED_BY_FM"
	StatusRejectedByAdmin BookingStatus = "REJECTED_BY_ADMIN"
	StatusCancelled       BookingStatus = "CANCELLED"
)

// CancellationStatus -> sub state machine di atas booking yang sudah
// approved. APPROVED_BY_FM dan CANCELLED_BY_FM ikut memaksa
// Booking.Status jadi CANCELLED.
type CancellationStatus string

const (
	CancelNotRequested CancellationStatus = "NOT_REQUESTED"
	CancelPending      CancellationStatus = "PENDING"
	CancelApprovedByGD CancellationStatus = "APPROVED_BY_GD"
	CancelApprovedByFM CancellationStatus = "APPROVED_BY_FM"
	CancelRejectedByGD CancellationStatus = "REJECTED_BY_GD"
	CancelRejectedByFM CancellationStatus = "REJECTED_BY_FM"
	// Force-cancel oleh FM (operational override), bypass tahap GD.
	CancelledByFM CancellationStatus = "CANCELLED_BY_FM"
)

// ApprovalStage -> tahap mana yang sedang memutuskan.
type ApprovalStage string

const (
	StageGD    ApprovalStage = "gd"
	StageFM    ApprovalStage = "fm"
	StageAdmin ApprovalStage = "admin"
)

// approvableFrom memetakan tahap ke status yang boleh dia putuskan.
// FM boleh langsung dari PENDING (requester tanpa review GD), Admin
// boleh dari semua status non-terminal.
var approvableFrom = map[ApprovalStage]map[BookingStatus]bool{
	StageGD:    {StatusPending: true},
	StageFM:    {StatusPending: true, StatusApprovedByGD: true},
	StageAdmin: {StatusPending: true, StatusApprovedByGD: true, StatusApprovedByFM: true},
}

var stageApproved = map[ApprovalStage]BookingStatus{
	StageGD:    StatusApprovedByGD,
	StageFM:    StatusApprovedByFM,
	StageAdmin: StatusApprovedByAdmin,
}

var stageRejected = map[ApprovalStage]BookingStatus{
	StageGD:    StatusRejectedByGD,
	StageFM:    StatusRejectedByFM,
	StageAdmin: StatusRejectedByAdmin,
}

// CanDecide -> true jika stage boleh approve/reject dari status sekarang.
func (s BookingStatus) CanDecide(stage ApprovalStage) bool {
	allowed, ok := approvableFrom[stage]
	if !ok {
		return false
	}
	return allowed[s]
}

// Approved mengembalikan status hasil approve oleh stage.
func (st ApprovalStage) Approved() BookingStatus { return stageApproved[st] }

// Rejected mengembalikan status hasil reject oleh stage.
func (st ApprovalStage) Rejected() BookingStatus { return stageRejected[st] }

// IsTerminal -> REJECTED_* dan CANCELLED tidak bisa ditransisikan lagi.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusApprovedByAdmin, StatusRejectedByGD, StatusRejectedByFM,
		StatusRejectedByAdmin, StatusCancelled:
		return true
	}
	return false
}

// IsApproved -> booking sudah lolos minimal satu tahap approval.
// Hanya booking approved yang boleh masuk cancellation chain.
func (s BookingStatus) IsApproved() bool {
	switch s {
	case StatusApprovedByGD, StatusApprovedByFM, StatusApprovedByAdmin:
		return true
	}
	return false
}

// cancelDecidableFrom -> precondition cancellation chain per tahap.
var cancelDecidableFrom = map[ApprovalStage]CancellationStatus{
	StageGD: CancelPending,
	StageFM: CancelApprovedByGD,
}

var cancelStageApproved = map[ApprovalStage]CancellationStatus{
	StageGD: CancelApprovedByGD,
	StageFM: CancelApprovedByFM,
}

var cancelStageRejected = map[ApprovalStage]CancellationStatus{
	StageGD: CancelRejectedByGD,
	StageFM: CancelRejectedByFM,
}

// CanDecide -> true jika stage boleh memutuskan cancellation dari status
// sekarang. Admin tidak ikut cancellation chain.
func (cs CancellationStatus) CanDecide(stage ApprovalStage) bool {
	want, ok := cancelDecidableFrom[stage]
	if !ok {
		return false
	}
	return cs == want
}

func (st ApprovalStage) CancelApproved() CancellationStatus { return cancelStageApproved[st] }

func (st ApprovalStage) CancelRejected() CancellationStatus { return cancelStageRejected[st] }

// IsTerminal -> setelah ini cancellation chain tidak bergerak lagi.
// Catatan: REJECTED_* memang terminal, tidak di-reset ke NOT_REQUESTED;
// mengikuti perilaku produksi yang sudah ada.
func (cs CancellationStatus) IsTerminal() bool {
	switch cs {
	case CancelApprovedByFM, CancelRejectedByGD, CancelRejectedByFM, CancelledByFM:
		return true
	}
	return false
}
