package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/rank-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

const (
	scanCampaignsTable = "scan_campaigns"
)

// AdmissionPolicy decide a admissão de uma campanha com o estado lido sob lock
type AdmissionPolicy interface {
	CycleStart(user *domain.User) time.Time
	Decide(accounting domain.ScanAccounting) domain.ScanDecision
}

type ScanCampaignRepository interface {
	// Admit lê o uso, decide e grava a campanha numa única transação com lock na linha do usuário
	Admit(ctx context.Context, campaign *domain.ScanCampaign, policy AdmissionPolicy) (domain.ScanDecision, error)
	// CountBaseSince conta as campanhas pagas pela franquia do plano a partir de since
	CountBaseSince(ctx context.Context, userID int, since time.Time) (int, error)
	CountByFunding(ctx context.Context, userID int, funding domain.ScanFunding) (int, error)
	ListReconciliation(ctx context.Context) ([]domain.CreditReconciliation, error)
}

type scanCampaignRepository struct {
	conn *postgres.Connection
}

func NewScanCampaignRepository(conn *postgres.Connection) ScanCampaignRepository {
	return &scanCampaignRepository{
		conn: conn,
	}
}

func (r *scanCampaignRepository) Admit(ctx context.Context, campaign *domain.ScanCampaign, policy AdmissionPolicy) (domain.ScanDecision, error) {
	var decision domain.ScanDecision

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		lockSQL, lockArgs, err := squirrel.
			Select(userColumns...).
			From(usersTable).
			Where(squirrel.Eq{"id": campaign.UserID, "deleted": false}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir consulta: %w", err)
		}

		user, err := scanUser(tx.QueryRowContext(ctx, lockSQL, lockArgs...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("erro ao bloquear usuário: %w", err)
		}

		cycleStart := policy.CycleStart(user)
		used, err := countCampaigns(ctx, tx, squirrel.And{
			squirrel.Eq{"user_id": user.ID, "funding": string(domain.ScanFundingBase)},
			squirrel.GtOrEq{"created_at": cycleStart},
		})
		if err != nil {
			return err
		}

		decision = policy.Decide(domain.ScanAccounting{
			Plan:          user.Plan,
			CycleStart:    cycleStart,
			UsedThisCycle: used,
			CreditBalance: user.ScanCreditBalance,
		})
		if !decision.Allowed {
			return nil
		}

		if decision.Funding == domain.ScanFundingCredit {
			if err := debitCredit(ctx, tx, user.ID); err != nil {
				return err
			}
		}

		campaign.Funding = decision.Funding
		insertSQL, insertArgs, err := squirrel.
			Insert(scanCampaignsTable).
			Columns(
				"id", "user_id", "keyword", "domain", "address", "center_lat", "center_lng",
				"max_radius_meters", "step_meters", "status", "funding", "created_at",
			).
			Values(
				campaign.ID, campaign.UserID, campaign.Keyword, campaign.Domain, campaign.Address,
				campaign.Center.Lat, campaign.Center.Lng, campaign.MaxRadiusMeters, campaign.StepMeters,
				campaign.Status, string(campaign.Funding), campaign.CreatedAt,
			).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir inserção: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("erro ao criar campanha de scan: %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.ScanDecision{}, err
	}

	return decision, nil
}

func debitCredit(ctx context.Context, q postgres.Queryer, userID int) error {
	debitSQL, debitArgs, err := squirrel.
		Update(usersTable).
		Set("scan_credit_balance", squirrel.Expr("scan_credit_balance - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		Where(squirrel.Gt{"scan_credit_balance": 0}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir débito: %w", err)
	}

	result, err := q.ExecContext(ctx, debitSQL, debitArgs...)
	if err != nil {
		return fmt.Errorf("erro ao debitar crédito de scan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar débito de crédito: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientCredits
	}

	return nil
}

func (r *scanCampaignRepository) CountBaseSince(ctx context.Context, userID int, since time.Time) (int, error) {
	return countCampaigns(ctx, r.conn, squirrel.And{
		squirrel.Eq{"user_id": userID, "funding": string(domain.ScanFundingBase)},
		squirrel.GtOrEq{"created_at": since},
	})
}

func (r *scanCampaignRepository) CountByFunding(ctx context.Context, userID int, funding domain.ScanFunding) (int, error) {
	return countCampaigns(ctx, r.conn, squirrel.Eq{"user_id": userID, "funding": string(funding)})
}

func countCampaigns(ctx context.Context, q postgres.Queryer, filter squirrel.Sqlizer) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(scanCampaignsTable).
		Where(filter).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var count int
	if err := q.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar campanhas de scan: %w", err)
	}

	return count, nil
}

// ListReconciliation cruza o saldo de cada usuário com as campanhas pagas com crédito
func (r *scanCampaignRepository) ListReconciliation(ctx context.Context) ([]domain.CreditReconciliation, error) {
	reconSQL, reconArgs, err := squirrel.
		Select(
			"u.id",
			"u.scan_credits_purchased",
			"u.scan_credit_balance",
			"COUNT(c.id) FILTER (WHERE c.funding = 'credit')",
		).
		From(usersTable+" u").
		LeftJoin(scanCampaignsTable+" c ON c.user_id = u.id").
		Where(squirrel.Eq{"u.deleted": false}).
		GroupBy("u.id", "u.scan_credits_purchased", "u.scan_credit_balance").
		OrderBy("u.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, reconSQL, reconArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar reconciliação de créditos: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CreditReconciliation, 0)
	for rows.Next() {
		var item domain.CreditReconciliation
		if err := rows.Scan(&item.UserID, &item.CreditsPurchased, &item.CreditBalance, &item.CreditCampaigns); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return items, nil
}
