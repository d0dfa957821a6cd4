package repository

//go:generate mockgen -source=adj_price.repository.go -destination=mocks/mock_adj_price.repository.go
//go:generate mockgen -source=alpaca.repository.go -destination=mocks/mock_alpaca.repository.go
//go:generate mockgen -source=api_request.repository.go -destination=mocks/mock_api_request.repository.go
//go:generate mockgen -source=asset_fundamentals.repository.go -destination=mocks/mock_asset_fundamentals.repository.go
//go:generate mockgen -source=asset_universe.repository.go -destination=mocks/mock_asset_universe.repository.go
//go:generate mockgen -source=contact.repository.go -destination=mocks/mock_contact.repository.go
//go:generate mockgen -source=factor_score.repository.go -destination=mocks/mock_factor_score.repository.go
//go:generate mockgen -source=gpt.repository.go -destination=mocks/mock_gpt.repository.go
//go:generate mockgen -source=interest_rate.repository.go -destination=mocks/mock_interest_rate.repository.go
//go:generate mockgen -source=investment.repository.go -destination=mocks/mock_investment.repository.go
//go:generate mockgen -source=investment_holdings.repository.go -destination=mocks/mock_investment_holdings.repository.go
//go:generate mockgen -source=investment_trade.repository.go -destination=mocks/mock_investment_trade.repository.go
//go:generate mockgen -source=latency_tracking.repository.go -destination=mocks/mock_latency_tracking.repository.go
//go:generate mockgen -source=price_provider.repository.go -destination=mocks/mock_price_provider.repository.go
//go:generate mockgen -source=ses_email.repository.go -destination=mocks/mock_ses_email.repository.go -exclude_interfaces=sesApi
//go:generate mockgen -source=stats.repository.go -destination=mocks/mock_stats.repository.go
//go:generate mockgen -source=strategy.repository.go -destination=mocks/mock_strategy.repository.go
//go:generate mockgen -source=strategy_run.repository.go -destination=mocks/mock_strategy_run.repository.go
//go:generate mockgen -source=ticker.repository.go -destination=mocks/mock_ticker.repository.go
//go:generate mockgen -source=user_account.repository.go -destination=mocks/mock_user_account.repository.go
//go:generate mockgen -source=user_strategy.repository.go -destination=mocks/mock_user_strategy.repository.go
