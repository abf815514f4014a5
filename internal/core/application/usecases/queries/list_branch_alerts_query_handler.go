package queries

import (
	"context"
	"strings"

	"courierops/internal/core/domain/model/alert"
	"courierops/internal/core/domain/model/kernel"
	"courierops/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListBranchAlertsQueryHandler struct {
	db       *gorm.DB
	branches ports.BranchDirectory
}

func NewListBranchAlertsQueryHandler(db *gorm.DB, branches ports.BranchDirectory) ListBranchAlertsQueryHandler {
	return ListBranchAlertsQueryHandler{db: db, branches: branches}
}

// Handle returns the most severe alerts first, newest first within a
// severity.
func (h ListBranchAlertsQueryHandler) Handle(
	ctx context.Context,
	query ListBranchAlertsQuery,
) ([]BranchAlertView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, h.branches, query.actor, query.branchID); err != nil {
		return nil, err
	}

	where := []string{"branch_id = ?"}
	args := []any{query.branchID.Bytes()}
	if query.status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*query.status))
	}
	if query.alertType != nil {
		where = append(where, "alert_type = ?")
		args = append(args, string(*query.alertType))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			alert_type,
			severity,
			status,
			message,
			context,
			triggered_at,
			resolved_at,
			resolved_by
		FROM branch_alerts
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY
			CASE severity WHEN 'CRITICAL' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END DESC,
			triggered_at DESC,
			id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]BranchAlertView, 0)
	for rows.Next() {
		var view BranchAlertView
		var id uuid.UUID
		var resolvedBy uuid.NullUUID
		var alertType, severity, status string
		var alertContext datatypes.JSONMap

		err = rows.Scan(
			&id,
			&alertType,
			&severity,
			&status,
			&view.Message,
			&alertContext,
			&view.TriggeredAt,
			&view.ResolvedAt,
			&resolvedBy,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resolvedBy.Valid {
			resolver, idErr := kernel.UUIDFromBytes(resolvedBy.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			view.ResolvedBy = &resolver
		}
		view.Type = alert.Type(alertType)
		view.Severity = alert.Severity(severity)
		view.Status = alert.Status(status)
		view.Context = map[string]any(alertContext)

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
