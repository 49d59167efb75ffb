package host

// Logical fields used by the flows
const (
	// shared
	FieldOkCode        Field = "main.okcode"
	FieldSave          Field = "main.save"
	FieldExit          Field = "main.exit"
	FieldExecute       Field = "main.execute"
	FieldServicesMenu  Field = "main.services"
	FieldPopupConfirm  Field = "popup.confirm"
	FieldPopupExecute  Field = "popup.execute"
	FieldAttachPath    Field = "attach.path"
	FieldAttachFile    Field = "attach.filename"
	FieldAttachPath2   Field = "attach.path.nested"
	FieldAttachFile2   Field = "attach.filename.nested"
	FieldAttachConfirm Field = "attach.confirm.nested"
	FieldLocalFile     Field = "attach.local"
	FieldLocalFileOK   Field = "attach.local.ok"

	// logon screen
	FieldLogonUser     Field = "logon.user"
	FieldLogonPassword Field = "logon.password"

	// account assignment dialog
	FieldAssignCostCenter      Field = "assign.cost_center"
	FieldAssignOrder           Field = "assign.order"
	FieldAssignOperation       Field = "assign.operation"
	FieldAssignProject         Field = "assign.project"
	FieldAssignReservation     Field = "assign.reservation"
	FieldAssignReservationItem Field = "assign.reservation_item"

	// requisition (ME51N)
	FieldReqOverview    Field = "req.overview"
	FieldReqItemGrid    Field = "req.item_grid"
	FieldReqServiceText Field = "req.service.text"
	FieldReqServiceQty  Field = "req.service.quantity"
	FieldReqServiceUnit Field = "req.service.unit"
	FieldReqServicePric Field = "req.service.price"
	FieldReqCustomerTab Field = "req.customer_tab"
	FieldReqTaxTab      Field = "req.tax_tab"
	FieldReqTaxCode     Field = "req.tax_code"

	// purchase order (ME21N / ME23N)
	FieldOrderSuperfield     Field = "order.superfield"
	FieldOrderSearchMore     Field = "order.search.more"
	FieldOrderSearchTab      Field = "order.search.tab"
	FieldOrderSearchExclude  Field = "order.search.exclude"
	FieldOrderSearchRun      Field = "order.search.run"
	FieldOrderVendorTaxID    Field = "order.search.tax_id"
	FieldOrderDocDate        Field = "order.doc_date"
	FieldOrderOverview       Field = "order.overview"
	FieldOrderPurchGroup     Field = "order.purchasing_group"
	FieldOrderDeliveryTab    Field = "order.header.delivery_tab"
	FieldOrderIncoterm       Field = "order.incoterm"
	FieldOrderReqNumber      Field = "order.item.requisition"
	FieldOrderReqLine        Field = "order.item.requisition_line"
	FieldOrderTaxCode        Field = "order.item.tax_code"
	FieldOrderDeliveryTimeTb Field = "order.item.delivery_tab"
	FieldOrderPlannedDeliv   Field = "order.item.planned_delivery"
	FieldOrderScheduleTab    Field = "order.item.schedule_tab"
	FieldOrderDeliveryDate   Field = "order.item.delivery_date"
	FieldOrderCustomerTab    Field = "order.header.customer_tab"
	FieldOrderModality       Field = "order.header.modality"
	FieldOrderPenalty        Field = "order.header.penalty"
	FieldOrderObjectType     Field = "order.header.object_type"
	FieldOrderBuyer          Field = "order.header.buyer"
	FieldOrderFiscalButton   Field = "order.fiscal.open"
	FieldOrderFiscalInsert   Field = "order.fiscal.insert"
	FieldOrderFiscalKey      Field = "order.fiscal.key"
	FieldOrderFiscalKeyOK    Field = "order.fiscal.key_confirm"
	FieldOrderHeaderTaxTab   Field = "order.header.tax_tab"
	FieldOrderHeaderTaxCode  Field = "order.header.tax_code"
	FieldOrderTextsTab       Field = "order.header.texts_tab"
	FieldOrderHeaderText     Field = "order.header.text"
	FieldOrderAccountTab     Field = "order.item.account_tab"
	FieldOrderAccountButton  Field = "order.item.account_button"
	FieldOrderResvSearchID   Field = "order.reservation.search_id"
	FieldOrderResvSearchKey  Field = "order.reservation.search_key"
	FieldOrderSaveConfirm    Field = "order.save_confirm"
	FieldOrderTitleToolbox   Field = "order.title_toolbox"

	// service entry sheet (ML81N)
	FieldFRSOrder        Field = "frs.order"
	FieldFRSCreate       Field = "frs.create"
	FieldFRSAcceptTab    Field = "frs.accept_tab"
	FieldFRSDataTab      Field = "frs.data_tab"
	FieldFRSShortText    Field = "frs.short_text"
	FieldFRSInvoice      Field = "frs.invoice"
	FieldFRSLocation     Field = "frs.location"
	FieldFRSPeriodFrom   Field = "frs.period_from"
	FieldFRSPeriodTo     Field = "frs.period_to"
	FieldFRSContact      Field = "frs.contact"
	FieldFRSDocDate      Field = "frs.doc_date"
	FieldFRSReference    Field = "frs.reference"
	FieldFRSHeaderText   Field = "frs.header_text"
	FieldFRSSelectLines  Field = "frs.select_lines"
	FieldFRSAccept       Field = "frs.accept"
	FieldFRSSaveYes      Field = "frs.save_confirm"
	FieldFRSSaveContinue Field = "frs.save_continue"

	// payment documents (MLGD / MLGDC)
	FieldGDServiceRadio Field = "gd.nf_service"
	FieldGDTaker        Field = "gd.taker"
	FieldGDInvoice      Field = "gd.invoice"
	FieldGDDocDate      Field = "gd.doc_date"
	FieldGDTaxID        Field = "gd.tax_id"
	FieldGDJurisdiction Field = "gd.jurisdiction"
	FieldGDFRS          Field = "gd.frs"
	FieldGDAttachYes    Field = "gd.attach_yes"
	FieldGDCCompany     Field = "gdc.company"
	FieldGDCProtocol    Field = "gdc.protocol"
	FieldGDCGrid        Field = "gdc.grid"
)

const (
	megui = "wnd[0]/usr/subSUB0:SAPLMEGUI:"

	overviewTail = "/subSUB1:SAPLMEVIEWS:1100/subSUB1:SAPLMEVIEWS:4000/btnDYN_4000-BUTTON"
	toplineTail  = "/subSUB0:SAPLMEGUI:0030/subSUB1:SAPLMEGUI:1105/ctxtMEPO_TOPLINE-"
	headerTail   = "/subSUB1:SAPLMEVIEWS:1100/subSUB2:SAPLMEVIEWS:1200/subSUB1:SAPLMEGUI:1102/tabsHEADER_DETAIL/"
	itemTblTail  = "/subSUB2:SAPLMEVIEWS:1100/subSUB2:SAPLMEVIEWS:1200/subSUB1:SAPLMEGUI:1211/tblSAPLMEGUITC_1211/"
	itemTail     = "/subSUB3:SAPLMEVIEWS:1100/subSUB2:SAPLMEVIEWS:1200/subSUB1:SAPLMEGUI:1301/subSUB2:SAPLMEGUI:1303/tabsITEM_DETAIL/"
	reqGridTail  = "/subSUB2:SAPLMEVIEWS:1100/subSUB2:SAPLMEVIEWS:1200/subSUB1:SAPLMEGUI:3212/cntlGRIDCONTROL/shellcont/shell"
	reqItemTail  = "/subSUB3:SAPLMEVIEWS:1100/subSUB2:SAPLMEVIEWS:1200/subSUB1:SAPLMEGUI:1301/subSUB2:SAPLMEGUI:3303/tabsREQ_ITEM_DETAIL/"

	reqService     = "tabpTABREQDT1/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1328/subSUB0:SAPLMLSP:0400/tblSAPLMLSPTC_VIEW/"
	reqCustomerTab = "tabpTABREQDT15"
	reqTaxTab      = reqCustomerTab + "/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1318/ssubCUSTOMER_DATA_ITEM:SAPLXM02:0111/tabsTABSTRIP_0111/tabpTAB3"

	hdrCustomerTab = "tabpTABHDT11"
	hdrCustomer    = hdrCustomerTab + "/ssubTABSTRIPCONTROL2SUB:SAPLMEGUI:1227/ssubCUSTOMER_DATA_HEADER:SAPLXM06:0101/tabsTABSTRIP_0101/"
	hdrCustomer1   = hdrCustomer + "tabpTAB1_0101/ssubSUB01:SAPLXM06:9101/"
	hdrTexts       = "tabpTABHDT3"

	kontblock = "wnd[1]/usr/subKONTBLOCK:SAPLKACB:1101/ctxtCOBL-"
	vendorSel = "wnd[1]/usr/tabsG_SELONETABSTRIP/tabpTAB001/ssubSUBSCR_PRESEL:SAPLSDH4:0220/sub:SAPLSDH4:0220/"
	resvSel   = "wnd[2]/usr/tabsG_SELONETABSTRIP/tabpTAB003/ssubSUBSCR_PRESEL:SAPLSDH4:0220/sub:SAPLSDH4:0220/"

	frsHeader = "wnd[0]/usr/tabsTAB_HEADER/tabpREGG/ssubSUB_HEADER:SAPLMLSR:0410/"
	frsAccept = "wnd[0]/usr/tabsTAB_HEADER/tabpREGA/ssubSUB_ACCEPTANCE:SAPLMLSR:0420/"
)

// layouts expands a purchasing-screen path for each layout variant in order
func layouts(tail string, variants ...string) []string {
	paths := make([]string, len(variants))
	for i, v := range variants {
		paths[i] = megui + v + tail
	}
	return paths
}

var defaultLocators = map[Field][]string{
	FieldOkCode:        {"wnd[0]/tbar[0]/okcd"},
	FieldSave:          {"wnd[0]/tbar[0]/btn[11]"},
	FieldExit:          {"wnd[0]/tbar[0]/btn[15]"},
	FieldExecute:       {"wnd[0]/tbar[1]/btn[8]"},
	FieldServicesMenu:  {"wnd[0]/tbar[1]/btn[13]"},
	FieldPopupConfirm:  {"wnd[1]/tbar[0]/btn[0]"},
	FieldPopupExecute:  {"wnd[1]/tbar[0]/btn[8]"},
	FieldAttachPath:    {"wnd[1]/usr/ctxtDY_PATH"},
	FieldAttachFile:    {"wnd[1]/usr/ctxtDY_FILENAME"},
	FieldAttachPath2:   {"wnd[2]/usr/ctxtDY_PATH"},
	FieldAttachFile2:   {"wnd[2]/usr/ctxtDY_FILENAME"},
	FieldAttachConfirm: {"wnd[2]/tbar[0]/btn[0]"},
	FieldLocalFile:     {"wnd[1]/usr/radRB_LOCAL"},
	FieldLocalFileOK:   {"wnd[1]/usr/btnBT_OK"},

	FieldLogonUser:     {"wnd[0]/usr/txtRSYST-BNAME"},
	FieldLogonPassword: {"wnd[0]/usr/pwdRSYST-BCODE"},

	FieldAssignCostCenter:      {kontblock + "KOSTL"},
	FieldAssignOrder:           {kontblock + "NPLNR"},
	FieldAssignOperation:       {kontblock + "VORNR"},
	FieldAssignProject:         {kontblock + "PS_POSID"},
	FieldAssignReservation:     {kontblock + "KBLNR"},
	FieldAssignReservationItem: {kontblock + "KBLPOS"},

	FieldReqOverview:    layouts(overviewTail, "0013", "0015", "0016"),
	FieldReqItemGrid:    layouts(reqGridTail, "0016", "0015", "0013"),
	FieldReqServiceText: layouts(reqItemTail+reqService+"txtESLL-KTEXT1[1,0]", "0019", "0015"),
	FieldReqServiceQty:  layouts(reqItemTail+reqService+"txtESLL-MENGE[2,0]", "0019", "0015"),
	FieldReqServiceUnit: layouts(reqItemTail+reqService+"ctxtESLL-MEINS[5,0]", "0019", "0015"),
	FieldReqServicePric: layouts(reqItemTail+reqService+"txtESLL-TBTWR[3,0]", "0019", "0015"),
	FieldReqCustomerTab: layouts(reqItemTail+reqCustomerTab, "0019", "0015"),
	FieldReqTaxTab:      layouts(reqItemTail+reqTaxTab, "0015", "0019"),
	FieldReqTaxCode:     layouts(reqItemTail+reqTaxTab+"/ssubSUB03:SAPLXM02:1070/ctxtEBAN_CI-ZZTPCOD_TLC", "0015", "0019"),

	FieldOrderSuperfield:     layouts(toplineTail+"SUPERFIELD", "0013", "0016"),
	FieldOrderSearchMore:     {vendorSel + "btnG_SELFLD_TAB-MORE[6,56]"},
	FieldOrderSearchTab:      {"wnd[2]/usr/tabsTAB_STRIP/tabpNOSV"},
	FieldOrderSearchExclude:  {"wnd[2]/usr/tabsTAB_STRIP/tabpNOSV/ssubSCREEN_HEADER:SAPLALDB:3030/tblSAPLALDBSINGLE_E/ctxtRSCSEL_255-SLOW_E[1,0]"},
	FieldOrderSearchRun:      {"wnd[2]/tbar[0]/btn[8]"},
	FieldOrderVendorTaxID:    {vendorSel + "txtG_SELFLD_TAB-LOW[7,24]"},
	FieldOrderDocDate:        layouts(toplineTail+"BEDAT", "0013", "0016"),
	FieldOrderOverview:       layouts(overviewTail, "0013", "0016", "0015"),
	FieldOrderPurchGroup:     layouts(headerTail+"tabpTABHDT9/ssubTABSTRIPCONTROL2SUB:SAPLMEGUI:1221/ctxtMEPO1222-EKGRP", "0013", "0010"),
	FieldOrderDeliveryTab:    layouts(headerTail+"tabpTABHDT1", "0013", "0010"),
	FieldOrderIncoterm:       layouts(headerTail+"tabpTABHDT1/ssubTABSTRIPCONTROL2SUB:SAPLMEGUI:1226/ctxtMEPO1226-INCO1", "0013", "0010"),
	FieldOrderReqNumber:      layouts(itemTblTail+"ctxtMEPO1211-BANFN[25,0]", "0013", "0016"),
	FieldOrderReqLine:        layouts(itemTblTail+"txtMEPO1211-BNFPO[26,0]", "0013", "0016"),
	FieldOrderTaxCode:        layouts(itemTail+"tabpTABIDT7/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1317/ctxtMEPO1317-MWSKZ", "0010", "0019", "0015"),
	FieldOrderDeliveryTimeTb: layouts(itemTail+"tabpTABIDT6", "0010", "0019", "0015"),
	FieldOrderPlannedDeliv:   layouts(itemTail+"tabpTABIDT6/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1313/txtMEPO1313-PLIFZ", "0019", "0010", "0015"),
	FieldOrderScheduleTab:    layouts(itemTail+"tabpTABIDT5", "0019", "0010", "0015"),
	FieldOrderDeliveryDate:   layouts(itemTail+"tabpTABIDT5/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1320/tblSAPLMEGUITC_1320/ctxtMEPO1320-EEIND[2,0]", "0015", "0019", "0010"),
	FieldOrderCustomerTab:    layouts(headerTail+hdrCustomerTab, "0010", "0013"),
	FieldOrderModality:       layouts(headerTail+hdrCustomer1+"ctxtEKKO_CI-ZZMODLICIT", "0010", "0013"),
	FieldOrderPenalty:        layouts(headerTail+hdrCustomer1+"ctxtEKKO_CI-ZZMULTA", "0010", "0013"),
	FieldOrderObjectType:     layouts(headerTail+hdrCustomer1+"ctxtEKKO_CI-ZZTPOBJ", "0010", "0013"),
	FieldOrderBuyer:          layouts(headerTail+hdrCustomer1+"ctxtEKKO_CI-ZZBNAME", "0010", "0013"),
	FieldOrderFiscalButton:   layouts(headerTail+hdrCustomer1+"btnBT_GERFIS", "0010", "0013"),
	FieldOrderFiscalInsert:   {"wnd[1]/usr/btnBT_INSERT_FIS"},
	FieldOrderFiscalKey:      {"wnd[2]/usr/ctxtEG_DADOS-CHAVE"},
	FieldOrderFiscalKeyOK:    {"wnd[2]/tbar[0]/btn[8]"},
	FieldOrderHeaderTaxTab:   layouts(headerTail+hdrCustomer+"tabpTAB4_0101", "0010", "0013"),
	FieldOrderHeaderTaxCode:  layouts(headerTail+hdrCustomer+"tabpTAB4_0101/ssubSUB04:SAPLXM06:9104/ctxtEKKO_CI-ZZTPCOD_TLC", "0010", "0013"),
	FieldOrderTextsTab:       layouts(headerTail+hdrTexts, "0010", "0013"),
	FieldOrderHeaderText:     layouts(headerTail+hdrTexts+"/ssubTABSTRIPCONTROL2SUB:SAPLMEGUI:1230/subTEXTS:SAPLMMTE:0100/subEDITOR:SAPLMMTE:0101/cntlTEXT_EDITOR_0101/shellcont/shell", "0010", "0013"),
	FieldOrderAccountTab:     layouts(itemTail+"tabpTABIDT1", "0010", "0019"),
	FieldOrderAccountButton:  layouts(itemTail+"tabpTABIDT1/ssubTABSTRIPCONTROL1SUB:SAPLMEGUI:1328/subSUB0:SAPLMLSP:0400/btnACCASS", "0019", "0010"),
	FieldOrderResvSearchID:   {resvSel + "txtG_SELFLD_TAB-LOW[2,24]"},
	FieldOrderResvSearchKey:  {resvSel + "ctxtG_SELFLD_TAB-LOW[7,24]"},
	FieldOrderSaveConfirm:    {"wnd[1]/usr/btnSPOP-VAROPTION1"},
	FieldOrderTitleToolbox:   {"wnd[0]/titl/shellcont/shell"},

	FieldFRSOrder:        {"wnd[1]/usr/ctxtRM11R-EBELN"},
	FieldFRSCreate:       {"wnd[0]/tbar[1]/btn[13]"},
	FieldFRSAcceptTab:    {"wnd[0]/usr/tabsTAB_HEADER/tabpREGA"},
	FieldFRSDataTab:      {"wnd[0]/usr/tabsTAB_HEADER/tabpREGG"},
	FieldFRSShortText:    {"wnd[0]/usr/txtESSR-TXZ01"},
	FieldFRSInvoice:      {frsHeader + "txtESSR-LBLNE"},
	FieldFRSLocation:     {frsHeader + "ctxtESSR-DLORT"},
	FieldFRSPeriodFrom:   {frsHeader + "ctxtESSR-LZVON"},
	FieldFRSPeriodTo:     {frsHeader + "ctxtESSR-LZBIS"},
	FieldFRSContact:      {frsHeader + "txtESSR-SBNAMAN"},
	FieldFRSDocDate:      {frsAccept + "ctxtESSR-BLDAT"},
	FieldFRSReference:    {frsAccept + "txtESSR-XBLNR"},
	FieldFRSHeaderText:   {frsAccept + "txtESSR-BKTXT"},
	FieldFRSSelectLines:  {"wnd[0]/usr/subSERVICE:SAPLMLSP:0400/btnSELEKTION"},
	FieldFRSAccept:       {"wnd[0]/tbar[1]/btn[9]"},
	FieldFRSSaveYes:      {"wnd[1]/tbar[0]/btn[9]"},
	FieldFRSSaveContinue: {"wnd[1]/tbar[0]/btn[8]"},

	FieldGDServiceRadio: {"wnd[0]/usr/radRB_NF_SERVICO"},
	FieldGDTaker:        {"wnd[0]/usr/txtV_SF_TOMA"},
	FieldGDInvoice:      {"wnd[0]/usr/txtV_NFS"},
	FieldGDDocDate:      {"wnd[0]/usr/ctxtW_PROTCAB-BLDAT"},
	FieldGDTaxID:        {"wnd[0]/usr/ctxtW_PROTCAB-STCD1"},
	FieldGDJurisdiction: {"wnd[0]/usr/ctxtW_PROTCAB-TXJCD"},
	FieldGDFRS:          {"wnd[0]/usr/ctxtGV_FRS"},
	FieldGDAttachYes:    {"wnd[1]/usr/btnBT_SIM"},
	FieldGDCCompany:     {"wnd[0]/usr/ctxtSO_BUKRS-LOW"},
	FieldGDCProtocol:    {"wnd[0]/usr/ctxtSO_PROTC-LOW"},
	FieldGDCGrid:        {"wnd[0]/usr/shell"},
}
