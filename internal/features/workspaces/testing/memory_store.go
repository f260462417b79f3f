package workspaces_testing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	users_testing "teamspace/internal/features/users/testing"
	workspaces_enums "teamspace/internal/features/workspaces/enums"
	workspaces_errors "teamspace/internal/features/workspaces/errors"
	workspaces_models "teamspace/internal/features/workspaces/models"
	workspaces_repositories "teamspace/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory MembershipStore. Transactions are serialised
// and roll back by restoring a snapshot taken when they start.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	directory        *users_testing.UserDirectory
	workspaces       map[uuid.UUID]*workspaces_models.Workspace
	workspaceMembers []*workspaces_models.WorkspaceMember
	projectMembers   []*workspaces_models.ProjectMember
	teams            []*workspaces_models.Team
	failures         map[string]error
}

type memorySnapshot struct {
	workspaceMembers []*workspaces_models.WorkspaceMember
	projectMembers   []*workspaces_models.ProjectMember
	teams            []*workspaces_models.Team
}

var _ workspaces_repositories.MembershipStore = (*MemoryStore)(nil)

func NewMemoryStore(directory *users_testing.UserDirectory) *MemoryStore {
	return &MemoryStore{
		directory:  directory,
		workspaces: make(map[uuid.UUID]*workspaces_models.Workspace),
		failures:   make(map[string]error),
	}
}

// FailOn makes every later call of the named store method return err.
func (s *MemoryStore) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[method] = err
}

func (s *MemoryStore) GetWorkspaceBySlug(_ context.Context, slug string) (*workspaces_models.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, workspace := range s.workspaces {
		if workspace.Slug == slug {
			copied := *workspace
			return &copied, nil
		}
	}

	return nil, workspaces_errors.ErrWorkspaceNotFound
}

func (s *MemoryStore) AddWorkspace(slug string) *workspaces_models.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      slug,
		CreatedAt: time.Now().UTC(),
	}
	s.workspaces[workspace.ID] = workspace

	return workspace
}

func (s *MemoryStore) AddWorkspaceMember(
	workspaceID, userID uuid.UUID,
	role workspaces_enums.WorkspaceRole,
) *workspaces_models.WorkspaceMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := &workspaces_models.WorkspaceMember{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		MemberID:    userID,
		Role:        role,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.workspaceMembers = append(s.workspaceMembers, member)

	copied := *member
	return &copied
}

func (s *MemoryStore) AddProjectMember(
	workspaceID, projectID, userID uuid.UUID,
	role workspaces_enums.WorkspaceRole,
) *workspaces_models.ProjectMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := &workspaces_models.ProjectMember{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		MemberID:    userID,
		Role:        role,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.projectMembers = append(s.projectMembers, member)

	copied := *member
	return &copied
}

// CountActiveProjectAdmins reports the active admin-tier memberships of a
// project, for asserting the project-level admin invariant.
func (s *MemoryStore) CountActiveProjectAdmins(projectID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, member := range s.projectMembers {
		if member.ProjectID == projectID && member.IsActive && workspaces_enums.IsAdminTier(member.Role) {
			count++
		}
	}

	return count
}

func (s *MemoryStore) CountActiveProjectMembers(projectID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, member := range s.projectMembers {
		if member.ProjectID == projectID && member.IsActive {
			count++
		}
	}

	return count
}

func (s *MemoryStore) InTransaction(
	ctx context.Context,
	workspaceID uuid.UUID,
	fn func(tx workspaces_repositories.MembershipStore) error,
) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := s.check(ctx, "InTransaction"); err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.workspaces[workspaceID]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if !ok {
		return workspaces_errors.ErrWorkspaceNotFound
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			s.restore(snapshot)
			panic(recovered)
		}

		if err == nil {
			err = s.check(ctx, "Commit")
		}

		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(s)
}

func (s *MemoryStore) GetActiveWorkspaceMembership(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*workspaces_models.WorkspaceMember, error) {
	if err := s.check(ctx, "GetActiveWorkspaceMembership"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := s.findActiveMemberLocked(workspaceID, userID)
	if member == nil {
		return nil, workspaces_errors.ErrMembershipNotFound
	}

	copied := *member
	return &copied, nil
}

func (s *MemoryStore) GetActiveWorkspaceMembershipByID(
	ctx context.Context,
	workspaceID, membershipID uuid.UUID,
) (*workspaces_models.WorkspaceMember, error) {
	if err := s.check(ctx, "GetActiveWorkspaceMembershipByID"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	var found *workspaces_models.WorkspaceMember
	for _, member := range s.workspaceMembers {
		if member.ID == membershipID && member.WorkspaceID == workspaceID && member.IsActive {
			copied := *member
			found = &copied
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return nil, workspaces_errors.ErrMembershipNotFound
	}

	user, err := s.directory.GetUserByID(ctx, found.MemberID)
	if err != nil || user.IsBot {
		return nil, workspaces_errors.ErrMembershipNotFound
	}

	return found, nil
}

func (s *MemoryStore) ListActiveWorkspaceMemberships(
	ctx context.Context,
	workspaceID uuid.UUID,
) ([]*workspaces_models.WorkspaceMemberWithUser, error) {
	if err := s.check(ctx, "ListActiveWorkspaceMemberships"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	var members []workspaces_models.WorkspaceMember
	for _, member := range s.workspaceMembers {
		if member.WorkspaceID == workspaceID && member.IsActive {
			members = append(members, *member)
		}
	}
	s.mu.Unlock()

	result := make([]*workspaces_models.WorkspaceMemberWithUser, 0, len(members))
	for _, member := range members {
		row := &workspaces_models.WorkspaceMemberWithUser{WorkspaceMember: member}

		if user, err := s.directory.GetUserByID(ctx, member.MemberID); err == nil {
			row.Email = user.Email
			row.DisplayName = user.DisplayName
			row.FirstName = user.FirstName
			row.LastName = user.LastName
			row.Avatar = user.Avatar
			row.IsBot = user.IsBot
		}

		result = append(result, row)
	}

	return result, nil
}

func (s *MemoryStore) CountActiveAdmins(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	if err := s.check(ctx, "CountActiveAdmins"); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, member := range s.workspaceMembers {
		if member.WorkspaceID == workspaceID && member.IsActive && workspaces_enums.IsAdminTier(member.Role) {
			count++
		}
	}

	return count, nil
}

func (s *MemoryStore) DeactivateWorkspaceMembership(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if err := s.check(ctx, "DeactivateWorkspaceMembership"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := s.findActiveMemberLocked(workspaceID, userID)
	if member == nil {
		return workspaces_errors.ErrMembershipNotFound
	}

	member.IsActive = false
	member.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *MemoryStore) UpdateWorkspaceRole(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	role workspaces_enums.WorkspaceRole,
) error {
	if err := s.check(ctx, "UpdateWorkspaceRole"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := s.findActiveMemberLocked(workspaceID, userID)
	if member == nil {
		return workspaces_errors.ErrMembershipNotFound
	}

	member.Role = role
	member.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *MemoryStore) UpdateViewProps(ctx context.Context, workspaceID, userID uuid.UUID, viewProps string) error {
	if err := s.check(ctx, "UpdateViewProps"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	member := s.findActiveMemberLocked(workspaceID, userID)
	if member == nil {
		return workspaces_errors.ErrMembershipNotFound
	}

	member.ViewProps = viewProps

	return nil
}

func (s *MemoryStore) ListActiveProjectMembershipsForUser(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]*workspaces_models.ProjectMember, error) {
	if err := s.check(ctx, "ListActiveProjectMembershipsForUser"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*workspaces_models.ProjectMember, 0)
	for _, member := range s.projectMembers {
		if member.WorkspaceID == workspaceID && member.MemberID == userID && member.IsActive {
			copied := *member
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (s *MemoryStore) ListActiveProjectMembershipsInUserProjects(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]*workspaces_models.ProjectMember, error) {
	userProjects, err := s.ListActiveProjectMembershipsForUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	projectIDs := make(map[uuid.UUID]struct{}, len(userProjects))
	for _, member := range userProjects {
		projectIDs[member.ProjectID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*workspaces_models.ProjectMember, 0)
	for _, member := range s.projectMembers {
		if _, ok := projectIDs[member.ProjectID]; ok && member.WorkspaceID == workspaceID && member.IsActive {
			copied := *member
			result = append(result, &copied)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ProjectID.String() < result[j].ProjectID.String()
	})

	return result, nil
}

func (s *MemoryStore) CountProjectsWhereUserIsSoleAdmin(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (int64, error) {
	if err := s.check(ctx, "CountProjectsWhereUserIsSoleAdmin"); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	admins := make(map[uuid.UUID][]uuid.UUID)
	for _, member := range s.projectMembers {
		if member.WorkspaceID == workspaceID && member.IsActive && workspaces_enums.IsAdminTier(member.Role) {
			admins[member.ProjectID] = append(admins[member.ProjectID], member.MemberID)
		}
	}

	var count int64
	for _, projectAdmins := range admins {
		if len(projectAdmins) == 1 && projectAdmins[0] == userID {
			count++
		}
	}

	return count, nil
}

func (s *MemoryStore) DeactivateAllProjectMembershipsForUser(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) error {
	if err := s.check(ctx, "DeactivateAllProjectMembershipsForUser"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, member := range s.projectMembers {
		if member.WorkspaceID == workspaceID && member.MemberID == userID && member.IsActive {
			member.IsActive = false
			member.UpdatedAt = time.Now().UTC()
		}
	}

	return nil
}

func (s *MemoryStore) FilterActiveMemberUserIDs(
	ctx context.Context,
	workspaceID uuid.UUID,
	userIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	if err := s.check(ctx, "FilterActiveMemberUserIDs"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]uuid.UUID, 0, len(userIDs))
	for _, userID := range userIDs {
		if s.findActiveMemberLocked(workspaceID, userID) != nil {
			result = append(result, userID)
		}
	}

	return result, nil
}

func (s *MemoryStore) CreateTeam(
	ctx context.Context,
	team *workspaces_models.Team,
	memberIDs []uuid.UUID,
) error {
	if err := s.check(ctx, "CreateTeam"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.teams {
		if existing.WorkspaceID == team.WorkspaceID && existing.Name == team.Name {
			return fmt.Errorf("create team: duplicate name %q", team.Name)
		}
	}

	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}
	team.Members = append([]uuid.UUID{}, memberIDs...)

	copied := *team
	copied.Members = append([]uuid.UUID{}, memberIDs...)
	s.teams = append(s.teams, &copied)

	return nil
}

func (s *MemoryStore) GetTeamByName(
	ctx context.Context,
	workspaceID uuid.UUID,
	name string,
) (*workspaces_models.Team, error) {
	if err := s.check(ctx, "GetTeamByName"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, team := range s.teams {
		if team.WorkspaceID == workspaceID && team.Name == name {
			copied := *team
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *MemoryStore) ListTeams(ctx context.Context, workspaceID uuid.UUID) ([]*workspaces_models.Team, error) {
	if err := s.check(ctx, "ListTeams"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*workspaces_models.Team, 0)
	for _, team := range s.teams {
		if team.WorkspaceID == workspaceID {
			copied := *team
			copied.Members = append([]uuid.UUID{}, team.Members...)
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (s *MemoryStore) check(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return workspaces_errors.WrapStoreError(method, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failures[method]; ok {
		return workspaces_errors.WrapStoreError(method, err)
	}

	return nil
}

func (s *MemoryStore) findActiveMemberLocked(workspaceID, userID uuid.UUID) *workspaces_models.WorkspaceMember {
	for _, member := range s.workspaceMembers {
		if member.WorkspaceID == workspaceID && member.MemberID == userID && member.IsActive {
			return member
		}
	}

	return nil
}

func (s *MemoryStore) snapshotLocked() memorySnapshot {
	snapshot := memorySnapshot{
		workspaceMembers: make([]*workspaces_models.WorkspaceMember, len(s.workspaceMembers)),
		projectMembers:   make([]*workspaces_models.ProjectMember, len(s.projectMembers)),
		teams:            make([]*workspaces_models.Team, len(s.teams)),
	}

	for i, member := range s.workspaceMembers {
		copied := *member
		snapshot.workspaceMembers[i] = &copied
	}
	for i, member := range s.projectMembers {
		copied := *member
		snapshot.projectMembers[i] = &copied
	}
	for i, team := range s.teams {
		copied := *team
		snapshot.teams[i] = &copied
	}

	return snapshot
}

func (s *MemoryStore) restore(snapshot memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workspaceMembers = snapshot.workspaceMembers
	s.projectMembers = snapshot.projectMembers
	s.teams = snapshot.teams
}
